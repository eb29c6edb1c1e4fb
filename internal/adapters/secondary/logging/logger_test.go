package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/deckgen/internal/domain/entities"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		in   entities.LogLevel
		want slog.Level
	}{
		{entities.LogLevelDebug, slog.LevelDebug},
		{entities.LogLevelInfo, slog.LevelInfo},
		{entities.LogLevelWarn, slog.LevelWarn},
		{entities.LogLevelError, slog.LevelError},
		{"", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			assert.Equal(t, tt.want, Level(tt.in))
		})
	}
}

func TestNewWithWriter(t *testing.T) {
	t.Run("default level hides info", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewWithWriter(entities.LoggingConfig{}, &buf)

		logger.Info("hidden")
		logger.Debug("hidden")
		assert.Empty(t, buf.String())

		logger.Warn("shown", "slides", 20)
		assert.Contains(t, buf.String(), "msg=shown")
		assert.Contains(t, buf.String(), "slides=20")
	})

	t.Run("debug level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewWithWriter(entities.LoggingConfig{Level: "debug"}, &buf)

		logger.Debug("added title slide")
		assert.Contains(t, buf.String(), "added title slide")
	})

	t.Run("json format", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewWithWriter(entities.LoggingConfig{Level: "info", JSONFormat: true}, &buf)

		logger.Info("deck finalized", "path", "out.pptx")

		var record map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "deck finalized", record["msg"])
		assert.Equal(t, "out.pptx", record["path"])
	})
}
