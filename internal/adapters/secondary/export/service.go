// Package export renders decks to the supported artifact formats and writes
// them to disk or any io.Writer.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/fredcamaral/deckgen/internal/adapters/secondary/pptx"
	"github.com/fredcamaral/deckgen/internal/domain/entities"
	"github.com/fredcamaral/deckgen/internal/domain/ports"
	"github.com/fredcamaral/deckgen/internal/domain/services"
)

// Format names
const (
	FormatPPTX     = "pptx"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatPDF      = "pdf"
)

// ErrUnsupportedFormat is returned when no writer is registered for a format
var ErrUnsupportedFormat = errors.New("unsupported export format")

// mimeTyper is implemented by writers that know their media type
type mimeTyper interface {
	MimeType() string
}

// Service is a registry of deck writers keyed by format
type Service struct {
	mu      sync.RWMutex
	writers map[string]ports.DeckWriter
	fs      ports.FileSystem
	logger  *slog.Logger
}

// NewService creates an empty registry
func NewService(fs ports.FileSystem, logger *slog.Logger) *Service {
	if fs == nil {
		fs = ports.NewRealFileSystem()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		writers: make(map[string]ports.DeckWriter),
		fs:      fs,
		logger:  logger,
	}
}

// NewDefaultService creates a registry holding the pptx, markdown, json and pdf writers
func NewDefaultService(logger *slog.Logger) *Service {
	s := NewService(nil, logger)
	s.Register(pptx.NewWriter(s.logger))
	s.Register(NewMarkdownWriter())
	s.Register(NewJSONWriter())
	s.Register(NewPDFWriter())
	return s
}

// Register adds or replaces the writer for its format
func (s *Service) Register(w ports.DeckWriter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writers[strings.ToLower(w.Format())] = w
}

// Writer returns the writer registered for format
func (s *Service) Writer(format string) (ports.DeckWriter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.writers[normalizeFormat(format)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedFormat, format, strings.Join(s.formatsLocked(), ", "))
	}
	return w, nil
}

// Formats returns the registered format names in sorted order
func (s *Service) Formats() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.formatsLocked()
}

func (s *Service) formatsLocked() []string {
	formats := make([]string, 0, len(s.writers))
	for f := range s.writers {
		formats = append(formats, f)
	}
	sort.Strings(formats)
	return formats
}

// Export finalizes deck to path in the given format
func (s *Service) Export(ctx context.Context, deck *entities.Deck, format, path string) error {
	w, err := s.Writer(format)
	if err != nil {
		return err
	}

	builder := services.NewBuilderService(w, s.fs, s.logger)
	if err := builder.Finalize(ctx, deck, path); err != nil {
		return err
	}

	s.logger.Info("deck exported",
		slog.String("format", w.Format()),
		slog.String("path", path),
	)
	return nil
}

// Render writes the artifact for format to out. The artifact is produced in
// memory first so nothing reaches out when rendering fails.
func (s *Service) Render(ctx context.Context, deck *entities.Deck, format string, out io.Writer) error {
	w, err := s.Writer(format)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := w.Write(ctx, deck, &buf); err != nil {
		return fmt.Errorf("rendering %s: %w", w.Format(), err)
	}

	_, err = buf.WriteTo(out)
	return err
}

// MimeType returns the media type of a format's artifacts
func (s *Service) MimeType(format string) string {
	w, err := s.Writer(format)
	if err != nil {
		return "application/octet-stream"
	}
	if mt, ok := w.(mimeTyper); ok {
		return mt.MimeType()
	}
	return "application/octet-stream"
}

// FileName builds a download name for a deck artifact
func (s *Service) FileName(base, format string) string {
	w, err := s.Writer(format)
	if err != nil {
		return base
	}
	return base + w.Extension()
}

func normalizeFormat(format string) string {
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case "md":
		return FormatMarkdown
	case "powerpoint", "ppt":
		return FormatPPTX
	default:
		return f
	}
}
