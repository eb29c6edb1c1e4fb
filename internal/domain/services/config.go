package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/fredcamaral/deckgen/internal/domain/entities"
	"github.com/fredcamaral/deckgen/internal/domain/ports"
)

// ConfigService implements the configuration service business logic
type ConfigService struct {
	loader ports.ConfigLoader
	merger ports.ConfigMerger
}

// NewConfigService creates a new configuration service
func NewConfigService(loader ports.ConfigLoader, merger ports.ConfigMerger) *ConfigService {
	return &ConfigService{
		loader: loader,
		merger: merger,
	}
}

// LoadConfig resolves configuration in order of precedence:
// defaults → global → local (or explicit file) → environment → flags
func (s *ConfigService) LoadConfig(ctx context.Context, opts ports.LoadOptions) (*entities.Config, error) {
	defaultConfig := s.GetDefaultConfig()

	globalConfig, err := s.loader.LoadGlobal(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	var localConfig *entities.Config
	if opts.ConfigFile != "" {
		localConfig, err = s.loader.LoadFile(ctx, opts.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	} else {
		localConfig, err = s.loader.LoadLocal(ctx, opts.WorkingDir)
		if err != nil {
			return nil, fmt.Errorf("loading local config: %w", err)
		}
	}

	configs := []*entities.Config{defaultConfig}
	if globalConfig != nil {
		configs = append(configs, globalConfig)
	}
	if localConfig != nil {
		configs = append(configs, localConfig)
	}

	mergedConfig := s.merger.Merge(configs...)

	envConfig := s.merger.ApplyEnvVars(mergedConfig)

	finalConfig := s.merger.ApplyFlags(envConfig, opts.Flags)

	if err := s.ValidateConfig(finalConfig); err != nil {
		return nil, fmt.Errorf("final config validation: %w", err)
	}

	return finalConfig, nil
}

// GetDefaultConfig returns the default configuration
func (s *ConfigService) GetDefaultConfig() *entities.Config {
	// Merge with no arguments returns defaults
	return s.merger.Merge()
}

// ValidateConfig validates a configuration
func (s *ConfigService) ValidateConfig(config *entities.Config) error {
	if config == nil {
		return errors.New("config cannot be nil")
	}

	return config.Validate()
}

// CreateLocalConfig writes a default deckgen.toml into dir
func (s *ConfigService) CreateLocalConfig(ctx context.Context, dir string) (string, error) {
	path := s.loader.GetLocalPath(dir)
	return path, s.loader.CreateDefaults(ctx, path)
}

// CreateGlobalConfig writes the global configuration file with defaults
func (s *ConfigService) CreateGlobalConfig(ctx context.Context) (string, error) {
	path := s.loader.GetGlobalPath()
	return path, s.loader.CreateDefaults(ctx, path)
}

// Ensure ConfigService implements ports.ConfigService
var _ ports.ConfigService = (*ConfigService)(nil)
