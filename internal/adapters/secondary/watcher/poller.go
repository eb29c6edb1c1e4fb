// Package watcher detects content file edits by polling.
package watcher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fredcamaral/deckgen/internal/domain/ports"
)

// PollingWatcher reports changes to one content file. A tick only hashes the
// file when its size or modification time moved, and events closer together
// than the debounce window are dropped.
type PollingWatcher struct {
	interval time.Duration
	debounce time.Duration
	logger   *slog.Logger

	mu       sync.Mutex
	snapshot fileSnapshot

	events   chan ports.FileChangeEvent
	wg       sync.WaitGroup
	stopOnce sync.Once
	stopCh   chan struct{}
}

// fileSnapshot is what the watcher last saw on disk
type fileSnapshot struct {
	exists   bool
	size     int64
	modTime  time.Time
	checksum string
}

// NewPollingWatcher creates a watcher polling every interval
func NewPollingWatcher(interval, debounce time.Duration, logger *slog.Logger) *PollingWatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &PollingWatcher{
		interval: interval,
		debounce: debounce,
		logger:   logger,
		events:   make(chan ports.FileChangeEvent, 10),
		stopCh:   make(chan struct{}),
	}
}

// Watch takes an initial snapshot of path and starts polling it. The file must exist.
func (w *PollingWatcher) Watch(ctx context.Context, path string) (<-chan ports.FileChangeEvent, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	snap, err := takeSnapshot(absPath, "")
	if err != nil {
		return nil, fmt.Errorf("initial scan: %w", err)
	}
	if !snap.exists {
		return nil, fmt.Errorf("initial scan: %s does not exist", absPath)
	}
	w.snapshot = snap

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.pollLoop(ctx, absPath)
	}()

	w.logger.Debug("watching content file", slog.String("path", absPath), slog.Duration("interval", w.interval))

	return w.events, nil
}

// Stop ends polling and closes the event channel. It is safe to call more than once.
func (w *PollingWatcher) Stop() error {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.wg.Wait()
		close(w.events)
	})
	return nil
}

func (w *PollingWatcher) pollLoop(ctx context.Context, path string) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	var lastEvent time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
		}

		change, changed, err := w.poll(path)
		if err != nil {
			w.logger.Warn("watch error", slog.String("path", path), slog.Any("error", err))
			continue
		}
		if !changed || time.Since(lastEvent) < w.debounce {
			continue
		}

		event := ports.FileChangeEvent{Path: path, Type: change, Timestamp: time.Now()}
		select {
		case w.events <- event:
			lastEvent = event.Timestamp
			w.logger.Debug("content file changed", slog.String("path", path), slog.String("change", change.String()))
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		}
	}
}

// poll compares the file against the last snapshot and records the new state
func (w *PollingWatcher) poll(path string) (ports.ChangeType, bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	prev := w.snapshot
	next, err := takeSnapshot(path, prev.checksumIfSame(path))
	if err != nil {
		return 0, false, err
	}
	w.snapshot = next

	switch {
	case prev.exists && !next.exists:
		return ports.Deleted, true, nil
	case !prev.exists && next.exists:
		return ports.Created, true, nil
	case next.exists && next.checksum != prev.checksum:
		return ports.Modified, true, nil
	default:
		return 0, false, nil
	}
}

// checksumIfSame returns the stored checksum when size and mtime are unchanged,
// letting takeSnapshot skip hashing
func (s fileSnapshot) checksumIfSame(path string) string {
	if !s.exists {
		return ""
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() != s.size || !info.ModTime().Equal(s.modTime) {
		return ""
	}
	return s.checksum
}

func takeSnapshot(path, knownChecksum string) (fileSnapshot, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fileSnapshot{}, nil
	}
	if err != nil {
		return fileSnapshot{}, fmt.Errorf("stat file: %w", err)
	}

	checksum := knownChecksum
	if checksum == "" {
		checksum, err = calculateChecksum(path)
		if err != nil {
			return fileSnapshot{}, fmt.Errorf("calculate checksum: %w", err)
		}
	}

	return fileSnapshot{
		exists:   true,
		size:     info.Size(),
		modTime:  info.ModTime(),
		checksum: checksum,
	}, nil
}

func calculateChecksum(path string) (string, error) {
	file, err := os.Open(path) // #nosec G304 - path is the content file named by the user
	if err != nil {
		return "", err
	}
	defer func() { _ = file.Close() }()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}

// Ensure PollingWatcher implements ports.FileWatcher
var _ ports.FileWatcher = (*PollingWatcher)(nil)
