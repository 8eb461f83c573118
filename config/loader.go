package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/hakkenlabs/toolgate/internal/fsys"
)

const (
	// ConfigDir is the directory name under ~/.config
	ConfigDir = "toolgate"
	// ConfigFile is the config file name
	ConfigFile = "config.yaml"
	// EnvPrefix is the prefix for environment variable overrides
	EnvPrefix = "TOOLGATE"
)

// Loader handles configuration loading with injected dependencies.
type Loader struct {
	fs fsys.FileSystem
}

// NewLoader creates a production Loader using the real filesystem.
func NewLoader() *Loader {
	return &Loader{fs: fsys.NewOSFileSystem()}
}

// NewLoaderWithFS creates a Loader with a custom filesystem (for testing).
func NewLoaderWithFS(fs fsys.FileSystem) *Loader {
	return &Loader{fs: fs}
}

// Load reads configuration from ~/.config/toolgate/config.yaml, merges it
// over the defaults, applies TOOLGATE_* environment overrides, then
// validates the result. A missing file yields the defaults; a malformed
// file is an error.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	homeDir, err := l.fs.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", ConfigDir, ConfigFile)

		data, err := l.fs.ReadFile(configPath)
		switch {
		case err == nil:
			// Unmarshal over the defaults: present keys overwrite them
			// (even if zero), missing keys leave them untouched.
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
			}
		case os.IsNotExist(err):
			// No config file, defaults stand.
		default:
			return nil, err
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load is a convenience function using the default loader.
func Load() (*Config, error) {
	return NewLoader().Load()
}
