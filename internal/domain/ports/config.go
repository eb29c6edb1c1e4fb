package ports

import (
	"context"

	"github.com/fredcamaral/deckgen/internal/domain/entities"
)

// ConfigLoader defines the interface for loading configuration files
type ConfigLoader interface {
	// LoadGlobal loads the global configuration file; a missing file yields nil
	LoadGlobal(ctx context.Context) (*entities.Config, error)

	// LoadLocal loads deckgen.toml from the specified directory; a missing file yields nil
	LoadLocal(ctx context.Context, dir string) (*entities.Config, error)

	// LoadFile loads an explicitly named configuration file
	LoadFile(ctx context.Context, path string) (*entities.Config, error)

	// CreateDefaults writes a default configuration file at the specified path
	CreateDefaults(ctx context.Context, path string) error

	GetGlobalPath() string
	GetLocalPath(dir string) string
}

// ConfigMerger defines the interface for merging configurations
type ConfigMerger interface {
	// Merge merges multiple configurations with later configs taking precedence
	Merge(configs ...*entities.Config) *entities.Config

	// ApplyFlags applies CLI flag overrides to a configuration
	ApplyFlags(config *entities.Config, flags map[string]interface{}) *entities.Config

	// ApplyEnvVars applies DECKGEN_* environment overrides to a configuration
	ApplyEnvVars(config *entities.Config) *entities.Config
}

// ConfigService defines the interface for the configuration service
type ConfigService interface {
	// LoadConfig resolves defaults, global, local or explicit file, environment and flags
	LoadConfig(ctx context.Context, opts LoadOptions) (*entities.Config, error)

	GetDefaultConfig() *entities.Config
	ValidateConfig(config *entities.Config) error
}

// LoadOptions tells the config service where to look and what to override
type LoadOptions struct {
	WorkingDir string
	// ConfigFile replaces the local deckgen.toml lookup when set
	ConfigFile string
	Flags      map[string]interface{}
}
