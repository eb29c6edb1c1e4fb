package ports

import (
	"context"
	"time"
)

// FileWatcher defines the interface for watching content file changes
type FileWatcher interface {
	// Watch starts watching a file for changes
	Watch(ctx context.Context, path string) (<-chan FileChangeEvent, error)
	// Stop stops the file watcher
	Stop() error
}

// FileChangeEvent represents a file change event
type FileChangeEvent struct {
	Path      string
	Type      ChangeType
	Timestamp time.Time
}

// ChangeType represents the type of file change
type ChangeType int

const (
	Modified ChangeType = iota
	Created
	Deleted
)

// String returns the string representation of ChangeType
func (c ChangeType) String() string {
	switch c {
	case Modified:
		return "modified"
	case Created:
		return "created"
	case Deleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// UpdateEvent is pushed to preview clients over the websocket
type UpdateEvent struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

const (
	EventTypeConnected = "connected"
	EventTypeReload    = "reload"
	EventTypeError     = "error"
)
