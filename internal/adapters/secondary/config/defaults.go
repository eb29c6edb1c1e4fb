package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/fredcamaral/deckgen/internal/domain/entities"
)

// GetDefaultConfig returns the built-in configuration
func GetDefaultConfig() *entities.Config {
	return &entities.Config{
		// Format stays empty so the output extension picks it
		Output: entities.OutputConfig{
			Path: entities.DefaultOutputPath,
		},
		Page: entities.PageConfig{
			WidthIn:  10,
			HeightIn: 7.5,
		},
		Deck: entities.DeckConfig{},
		Server: entities.ServerConfig{
			Host:            "localhost",
			Port:            8080,
			ReadTimeout:     30,
			WriteTimeout:    30,
			ShutdownTimeout: 5,
			CORSOrigins: []string{
				"http://localhost:3000",
				"http://127.0.0.1:3000",
				"http://localhost:8080",
				"http://127.0.0.1:8080",
			},
		},
		Watcher: entities.WatcherConfig{
			IntervalMs: 200,
			DebounceMs: 500,
		},
		Logging: entities.LoggingConfig{
			Level:      string(entities.LogLevelWarn),
			JSONFormat: false,
		},
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvSliceOrDefault splits a comma separated variable
func getEnvSliceOrDefault(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		result := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}
