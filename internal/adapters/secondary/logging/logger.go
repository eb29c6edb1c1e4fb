// Package logging builds the structured logger shared by the CLI, the builder
// and the preview server.
package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/fredcamaral/deckgen/internal/domain/entities"
)

// New returns a logger writing to stderr
func New(cfg entities.LoggingConfig) *slog.Logger {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter returns a logger writing to w with the configured level and format
func NewWithWriter(cfg entities.LoggingConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: Level(cfg.GetLevel())}

	if cfg.JSONFormat {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Discard returns a logger that drops every record
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Level maps a configured level name to its slog level
func Level(l entities.LogLevel) slog.Level {
	switch l {
	case entities.LogLevelDebug:
		return slog.LevelDebug
	case entities.LogLevelInfo:
		return slog.LevelInfo
	case entities.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
