package entities

import (
	"errors"
	"fmt"
	"net"
	"path/filepath"
	"strings"
	"time"
)

// DefaultOutputPath is the artifact written when no output is configured
const DefaultOutputPath = "SpaceX_Data_Science_Projects_Presentation.pptx"

// Config represents the complete application configuration
type Config struct {
	Output  OutputConfig  `toml:"output"`
	Page    PageConfig    `toml:"page"`
	Deck    DeckConfig    `toml:"deck"`
	Server  ServerConfig  `toml:"server"`
	Watcher WatcherConfig `toml:"watcher"`
	Logging LoggingConfig `toml:"logging"`
}

// Validate validates the entire configuration
func (c *Config) Validate() error {
	if err := c.Output.Validate(); err != nil {
		return fmt.Errorf("output config: %w", err)
	}

	if err := c.Page.Validate(); err != nil {
		return fmt.Errorf("page config: %w", err)
	}

	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := c.Watcher.Validate(); err != nil {
		return fmt.Errorf("watcher config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// OutputConfig controls where and in which format the deck is written
type OutputConfig struct {
	Path   string `toml:"path"`
	Format string `toml:"format"`
}

// Validate validates output configuration
func (o OutputConfig) Validate() error {
	if strings.TrimSpace(o.Path) == "" {
		return errors.New("output path cannot be empty")
	}
	return nil
}

// GetFormat returns the configured format, falling back to the output file extension
func (o OutputConfig) GetFormat() string {
	if o.Format != "" {
		return strings.ToLower(o.Format)
	}
	switch strings.ToLower(filepath.Ext(o.Path)) {
	case ".md", ".markdown":
		return "markdown"
	case ".json":
		return "json"
	case ".pdf":
		return "pdf"
	default:
		return "pptx"
	}
}

// PageConfig holds slide dimensions in inches
type PageConfig struct {
	WidthIn  float64 `toml:"width_in"`
	HeightIn float64 `toml:"height_in"`
}

// Validate validates page configuration
func (p PageConfig) Validate() error {
	if p.WidthIn <= 0 || p.HeightIn <= 0 {
		return fmt.Errorf("page dimensions must be positive, got %gx%g", p.WidthIn, p.HeightIn)
	}
	// PowerPoint accepts slide sides between 1in and 56in
	if p.WidthIn < 1 || p.WidthIn > 56 || p.HeightIn < 1 || p.HeightIn > 56 {
		return fmt.Errorf("page dimensions must be between 1 and 56 inches, got %gx%g", p.WidthIn, p.HeightIn)
	}
	return nil
}

// Size converts the configured dimensions to a PageSize
func (p PageConfig) Size() PageSize {
	return PageSizeInches(p.WidthIn, p.HeightIn)
}

// DeckConfig names the content source and overrides deck properties
type DeckConfig struct {
	// Content is a path to a YAML, TOML or Markdown content file; empty uses the built-in deck
	Content string `toml:"content"`
	Title   string `toml:"title"`
	Author  string `toml:"author"`
	Subject string `toml:"subject"`
}

// ServerConfig contains preview server configuration
type ServerConfig struct {
	Host            string   `toml:"host"`
	Port            int      `toml:"port"`
	ReadTimeout     int      `toml:"read_timeout"`
	WriteTimeout    int      `toml:"write_timeout"`
	ShutdownTimeout int      `toml:"shutdown_timeout"`
	CORSOrigins     []string `toml:"cors_origins"`
}

// Validate validates server configuration
func (s ServerConfig) Validate() error {
	if s.Port < 0 || s.Port > 65535 {
		return errors.New("port must be between 0 and 65535")
	}

	if s.Host != "" && s.Host != "localhost" {
		if ip := net.ParseIP(s.Host); ip == nil && strings.ContainsAny(s.Host, " /!") {
			return fmt.Errorf("invalid host: %s", s.Host)
		}
	}

	if s.ReadTimeout < 0 {
		return errors.New("read timeout must be non-negative")
	}

	if s.WriteTimeout < 0 {
		return errors.New("write timeout must be non-negative")
	}

	if s.ShutdownTimeout < 0 {
		return errors.New("shutdown timeout must be non-negative")
	}

	for _, origin := range s.CORSOrigins {
		if origin == "" {
			return errors.New("CORS origin cannot be empty")
		}
		if origin == "*" {
			continue
		}
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("invalid CORS origin format: %s (must start with http:// or https://)", origin)
		}
	}

	return nil
}

// GetReadTimeout returns the read timeout as a duration
func (s ServerConfig) GetReadTimeout() time.Duration {
	if s.ReadTimeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.ReadTimeout) * time.Second
}

// GetWriteTimeout returns the write timeout as a duration
func (s ServerConfig) GetWriteTimeout() time.Duration {
	if s.WriteTimeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.WriteTimeout) * time.Second
}

// GetShutdownTimeout returns the shutdown timeout as a duration
func (s ServerConfig) GetShutdownTimeout() time.Duration {
	if s.ShutdownTimeout <= 0 {
		return 5 * time.Second
	}
	return time.Duration(s.ShutdownTimeout) * time.Second
}

// GetCORSOrigins returns the configured origins, or the local dev server and
// the preview server's own loopback origins when none are set
func (s ServerConfig) GetCORSOrigins() []string {
	if len(s.CORSOrigins) == 0 {
		return []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			fmt.Sprintf("http://localhost:%d", s.Port),
			fmt.Sprintf("http://127.0.0.1:%d", s.Port),
		}
	}
	return s.CORSOrigins
}

// WatcherConfig contains content file watcher configuration
type WatcherConfig struct {
	IntervalMs int `toml:"interval_ms"`
	DebounceMs int `toml:"debounce_ms"`
}

// Validate validates watcher configuration
func (w WatcherConfig) Validate() error {
	if w.IntervalMs < 50 {
		return errors.New("watcher interval must be at least 50ms")
	}

	if w.DebounceMs < 0 {
		return errors.New("debounce time must be non-negative")
	}

	return nil
}

// GetInterval returns the watcher interval as a duration
func (w WatcherConfig) GetInterval() time.Duration {
	if w.IntervalMs <= 0 {
		return 200 * time.Millisecond
	}
	return time.Duration(w.IntervalMs) * time.Millisecond
}

// GetDebounce returns the debounce time as a duration
func (w WatcherConfig) GetDebounce() time.Duration {
	if w.DebounceMs <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(w.DebounceMs) * time.Millisecond
}

// LogLevel represents logging level
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string `toml:"level"`       // debug, info, warn, error
	JSONFormat bool   `toml:"json_format"` // Output logs in JSON format
}

// Validate validates logging configuration
func (l LoggingConfig) Validate() error {
	switch LogLevel(l.Level) {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
	case "":
		// Empty is okay, will use default
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", l.Level)
	}

	return nil
}

// GetLevel returns the log level with default
func (l LoggingConfig) GetLevel() LogLevel {
	if l.Level == "" {
		return LogLevelWarn
	}
	return LogLevel(l.Level)
}
