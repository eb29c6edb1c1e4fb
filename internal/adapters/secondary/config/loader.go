package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/fredcamaral/deckgen/internal/domain/entities"
	"github.com/fredcamaral/deckgen/internal/domain/ports"
)

// LocalConfigName is the per-project configuration file looked up in the working directory
const LocalConfigName = "deckgen.toml"

// TOMLLoader implements the ConfigLoader interface using TOML files
type TOMLLoader struct {
	globalPath string
	localName  string
}

// NewTOMLLoader creates a loader rooted at ~/.config/deckgen
func NewTOMLLoader() *TOMLLoader {
	homeDir, _ := os.UserHomeDir()
	return NewTOMLLoaderWithPath(filepath.Join(homeDir, ".config", "deckgen", "config.toml"))
}

// NewTOMLLoaderWithPath creates a loader with an explicit global config path
func NewTOMLLoaderWithPath(globalPath string) *TOMLLoader {
	return &TOMLLoader{
		globalPath: globalPath,
		localName:  LocalConfigName,
	}
}

// LoadGlobal loads the global configuration file. Unlike local files it is never
// created implicitly; use CreateDefaults through `deckgen config init --global`.
func (l *TOMLLoader) LoadGlobal(ctx context.Context) (*entities.Config, error) {
	return l.loadOptional(l.globalPath)
}

// LoadLocal loads deckgen.toml from dir if present
func (l *TOMLLoader) LoadLocal(ctx context.Context, dir string) (*entities.Config, error) {
	return l.loadOptional(l.GetLocalPath(dir))
}

// LoadFile loads a configuration file that must exist
func (l *TOMLLoader) LoadFile(ctx context.Context, path string) (*entities.Config, error) {
	return l.loadConfig(path)
}

// CreateDefaults creates a default configuration file at the specified path
func (l *TOMLLoader) CreateDefaults(ctx context.Context, path string) error {
	if err := l.ensureConfigDir(path); err != nil {
		return err
	}

	file, err := os.Create(path) // #nosec G304 - path is the global or local config path
	if err != nil {
		return fmt.Errorf("creating config file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	encoder := toml.NewEncoder(file)
	encoder.Indent = "  "

	if err := encoder.Encode(GetDefaultConfig()); err != nil {
		return fmt.Errorf("encoding config to %s: %w", path, err)
	}

	return nil
}

// GetGlobalPath returns the path to the global configuration file
func (l *TOMLLoader) GetGlobalPath() string {
	return l.globalPath
}

// GetLocalPath returns the path to the local configuration file for a directory
func (l *TOMLLoader) GetLocalPath(dir string) string {
	return filepath.Join(dir, l.localName)
}

func (l *TOMLLoader) loadOptional(path string) (*entities.Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return l.loadConfig(path)
}

// loadConfig parses a configuration file. Files may be partial, so full
// validation happens once all layers are merged.
func (l *TOMLLoader) loadConfig(path string) (*entities.Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path is from controlled sources (global/local/flag)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var config entities.Config
	meta, err := toml.Decode(string(data), &config)
	if err != nil {
		return nil, fmt.Errorf("parsing TOML from %s: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}

	if config.Logging.Level != "" {
		if err := config.Logging.Validate(); err != nil {
			return nil, fmt.Errorf("invalid config in %s: %w", path, err)
		}
	}

	return &config, nil
}

// ensureConfigDir ensures the configuration directory exists
func (l *TOMLLoader) ensureConfigDir(path string) error {
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	return nil
}

// Ensure TOMLLoader implements ports.ConfigLoader
var _ ports.ConfigLoader = (*TOMLLoader)(nil)
