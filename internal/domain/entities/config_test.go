package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTestConfig() *Config {
	return &Config{
		Output:  OutputConfig{Path: DefaultOutputPath, Format: "pptx"},
		Page:    PageConfig{WidthIn: 10, HeightIn: 7.5},
		Server:  ServerConfig{Host: "localhost", Port: 8080},
		Watcher: WatcherConfig{IntervalMs: 200, DebounceMs: 500},
		Logging: LoggingConfig{Level: "info"},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "empty output", mutate: func(c *Config) { c.Output.Path = " " }, wantErr: "output config"},
		{name: "zero width", mutate: func(c *Config) { c.Page.WidthIn = 0 }, wantErr: "page config"},
		{name: "huge page", mutate: func(c *Config) { c.Page.HeightIn = 100 }, wantErr: "between 1 and 56"},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: "server config"},
		{name: "bad origin", mutate: func(c *Config) { c.Server.CORSOrigins = []string{"ftp://x"} }, wantErr: "invalid CORS origin"},
		{name: "wildcard origin", mutate: func(c *Config) { c.Server.CORSOrigins = []string{"*"} }},
		{name: "fast watcher", mutate: func(c *Config) { c.Watcher.IntervalMs = 10 }, wantErr: "watcher config"},
		{name: "bad level", mutate: func(c *Config) { c.Logging.Level = "trace" }, wantErr: "invalid log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validTestConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestOutputConfig_GetFormat(t *testing.T) {
	tests := []struct {
		output OutputConfig
		want   string
	}{
		{OutputConfig{Path: "deck.pptx"}, "pptx"},
		{OutputConfig{Path: "deck"}, "pptx"},
		{OutputConfig{Path: "deck.md"}, "markdown"},
		{OutputConfig{Path: "deck.JSON"}, "json"},
		{OutputConfig{Path: "deck.pdf"}, "pdf"},
		{OutputConfig{Path: "deck.pdf", Format: "PPTX"}, "pptx"},
	}

	for _, tt := range tests {
		t.Run(tt.output.Path+"/"+tt.output.Format, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.output.GetFormat())
		})
	}
}

func TestPageConfig_Size(t *testing.T) {
	assert.Equal(t, DefaultPageSize, PageConfig{WidthIn: 10, HeightIn: 7.5}.Size())
}

func TestDurations(t *testing.T) {
	assert.Equal(t, 30*time.Second, ServerConfig{}.GetReadTimeout())
	assert.Equal(t, 5*time.Second, ServerConfig{ShutdownTimeout: 5}.GetShutdownTimeout())
	assert.Equal(t, 200*time.Millisecond, WatcherConfig{}.GetInterval())
	assert.Equal(t, time.Second, WatcherConfig{DebounceMs: 1000}.GetDebounce())
	assert.NotEmpty(t, ServerConfig{}.GetCORSOrigins())
}

func TestLoggingConfig_GetLevel(t *testing.T) {
	assert.Equal(t, LogLevelWarn, LoggingConfig{}.GetLevel())
	assert.Equal(t, LogLevelDebug, LoggingConfig{Level: "debug"}.GetLevel())
}
