package config

import (
	"github.com/fredcamaral/deckgen/internal/domain/entities"
	"github.com/fredcamaral/deckgen/internal/domain/ports"
)

// ConfigMerger implements the ConfigMerger interface
type ConfigMerger struct{}

// NewConfigMerger creates a new configuration merger
func NewConfigMerger() *ConfigMerger {
	return &ConfigMerger{}
}

// Merge merges multiple configurations with later configs taking precedence.
// With no arguments it returns the defaults.
func (m *ConfigMerger) Merge(configs ...*entities.Config) *entities.Config {
	if len(configs) == 0 {
		return GetDefaultConfig()
	}

	result := deepCopy(configs[0])
	if result == nil {
		result = GetDefaultConfig()
	}

	for i := 1; i < len(configs); i++ {
		if configs[i] != nil {
			m.mergeInto(result, configs[i])
		}
	}

	return result
}

// ApplyFlags applies CLI flag overrides. Only keys present in flags with a
// non-zero value take effect.
func (m *ConfigMerger) ApplyFlags(config *entities.Config, flags map[string]interface{}) *entities.Config {
	result := deepCopy(config)

	if output, ok := flags["output"].(string); ok && output != "" {
		result.Output.Path = output
	}

	if format, ok := flags["format"].(string); ok && format != "" {
		result.Output.Format = format
	}

	if content, ok := flags["content"].(string); ok && content != "" {
		result.Deck.Content = content
	}

	if width, ok := flags["width"].(float64); ok && width > 0 {
		result.Page.WidthIn = width
	}

	if height, ok := flags["height"].(float64); ok && height > 0 {
		result.Page.HeightIn = height
	}

	if verbose, ok := flags["verbose"].(bool); ok && verbose {
		result.Logging.Level = string(entities.LogLevelDebug)
	}

	if port, ok := flags["port"].(int); ok && port > 0 {
		result.Server.Port = port
	}

	if host, ok := flags["host"].(string); ok && host != "" {
		result.Server.Host = host
	}

	return result
}

// ApplyEnvVars applies DECKGEN_* environment overrides
func (m *ConfigMerger) ApplyEnvVars(config *entities.Config) *entities.Config {
	result := deepCopy(config)

	result.Output.Path = getEnvOrDefault("DECKGEN_OUTPUT", result.Output.Path)
	result.Output.Format = getEnvOrDefault("DECKGEN_FORMAT", result.Output.Format)

	result.Page.WidthIn = getEnvFloatOrDefault("DECKGEN_PAGE_WIDTH", result.Page.WidthIn)
	result.Page.HeightIn = getEnvFloatOrDefault("DECKGEN_PAGE_HEIGHT", result.Page.HeightIn)

	result.Deck.Content = getEnvOrDefault("DECKGEN_CONTENT", result.Deck.Content)
	result.Deck.Title = getEnvOrDefault("DECKGEN_TITLE", result.Deck.Title)
	result.Deck.Author = getEnvOrDefault("DECKGEN_AUTHOR", result.Deck.Author)
	result.Deck.Subject = getEnvOrDefault("DECKGEN_SUBJECT", result.Deck.Subject)

	result.Server.Host = getEnvOrDefault("DECKGEN_HOST", result.Server.Host)
	result.Server.Port = getEnvIntOrDefault("DECKGEN_PORT", result.Server.Port)
	result.Server.CORSOrigins = getEnvSliceOrDefault("DECKGEN_CORS_ORIGINS", result.Server.CORSOrigins)

	result.Watcher.IntervalMs = getEnvIntOrDefault("DECKGEN_WATCH_INTERVAL", result.Watcher.IntervalMs)
	result.Watcher.DebounceMs = getEnvIntOrDefault("DECKGEN_WATCH_DEBOUNCE", result.Watcher.DebounceMs)

	result.Logging.Level = getEnvOrDefault("DECKGEN_LOG_LEVEL", result.Logging.Level)
	result.Logging.JSONFormat = getEnvBoolOrDefault("DECKGEN_LOG_JSON", result.Logging.JSONFormat)

	return result
}

// mergeInto overlays every non-zero field of source onto target
func (m *ConfigMerger) mergeInto(target, source *entities.Config) {
	if source.Output.Path != "" {
		target.Output.Path = source.Output.Path
	}
	if source.Output.Format != "" {
		target.Output.Format = source.Output.Format
	}

	if source.Page.WidthIn != 0 {
		target.Page.WidthIn = source.Page.WidthIn
	}
	if source.Page.HeightIn != 0 {
		target.Page.HeightIn = source.Page.HeightIn
	}

	if source.Deck.Content != "" {
		target.Deck.Content = source.Deck.Content
	}
	if source.Deck.Title != "" {
		target.Deck.Title = source.Deck.Title
	}
	if source.Deck.Author != "" {
		target.Deck.Author = source.Deck.Author
	}
	if source.Deck.Subject != "" {
		target.Deck.Subject = source.Deck.Subject
	}

	if source.Server.Port != 0 {
		target.Server.Port = source.Server.Port
	}
	if source.Server.Host != "" {
		target.Server.Host = source.Server.Host
	}
	if source.Server.ReadTimeout != 0 {
		target.Server.ReadTimeout = source.Server.ReadTimeout
	}
	if source.Server.WriteTimeout != 0 {
		target.Server.WriteTimeout = source.Server.WriteTimeout
	}
	if source.Server.ShutdownTimeout != 0 {
		target.Server.ShutdownTimeout = source.Server.ShutdownTimeout
	}
	if len(source.Server.CORSOrigins) > 0 {
		target.Server.CORSOrigins = copyStrings(source.Server.CORSOrigins)
	}

	if source.Watcher.IntervalMs != 0 {
		target.Watcher.IntervalMs = source.Watcher.IntervalMs
	}
	if source.Watcher.DebounceMs != 0 {
		target.Watcher.DebounceMs = source.Watcher.DebounceMs
	}

	if source.Logging.Level != "" {
		target.Logging.Level = source.Logging.Level
	}
	// TOML cannot tell false from unset, so JSON logging can only be switched on by a layer
	if source.Logging.JSONFormat {
		target.Logging.JSONFormat = true
	}
}

// deepCopy creates a deep copy of a configuration
func deepCopy(src *entities.Config) *entities.Config {
	if src == nil {
		return nil
	}

	dst := *src
	dst.Server.CORSOrigins = copyStrings(src.Server.CORSOrigins)
	return &dst
}

func copyStrings(src []string) []string {
	if src == nil {
		return nil
	}
	dst := make([]string, len(src))
	copy(dst, src)
	return dst
}

// Ensure ConfigMerger implements ports.ConfigMerger
var _ ports.ConfigMerger = (*ConfigMerger)(nil)
