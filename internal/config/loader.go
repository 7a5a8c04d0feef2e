package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/multiprof/multiprof/internal/constants"
	"github.com/multiprof/multiprof/internal/safe"
)

// Loader handles loading and saving the configuration file.
type Loader struct {
	homeDir string
}

// NewLoader creates a new config loader.
// The base directory is resolved in this order:
//  1. MULTIPROF_CONFIG environment variable.
//  2. User home directory (~/).
//  3. /tmp/multiprof-fallback (containerized environments without a home dir).
//
// The loader never returns an error. In minimal containers (e.g., scratch,
// distroless) where no home directory exists, the fallback ensures Load still
// returns defaults with env var overrides applied.
func NewLoader() (*Loader, error) {
	if baseDir := os.Getenv("MULTIPROF_CONFIG"); baseDir != "" {
		return &Loader{
			homeDir: baseDir,
		}, nil
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		return &Loader{
			homeDir: homeDir,
		}, nil
	}

	// Fallback for containerized environments without a home directory.
	// Config files won't exist here, so Load returns defaults + env overrides.
	return &Loader{
		homeDir: "/tmp/multiprof-fallback",
	}, nil
}

// ConfigPath returns the path to the config file.
func (l *Loader) ConfigPath() string {
	return filepath.Join(l.homeDir, constants.DefaultDir, constants.ConfigFile)
}

// Load loads the configuration.
// Returns default config if the file doesn't exist.
// Applies environment variable overrides for layered configuration.
func (l *Loader) Load() (*Config, error) {
	config := DefaultConfig()

	path := l.ConfigPath()
	if _, err := os.Stat(path); err == nil {
		if err := mergeFromFile(config, path); err != nil {
			return nil, err
		}
	}

	// Apply environment variable overrides (layered configuration).
	if err := LoadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	return config, nil
}

// LoadFile loads configuration from an explicit file path.
// Unlike Load, the file must exist. Environment variable overrides
// still apply on top.
func LoadFile(path string) (*Config, error) {
	config := DefaultConfig()

	if err := mergeFromFile(config, path); err != nil {
		return nil, err
	}

	if err := LoadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	return config, nil
}

// mergeFromFile unmarshals a YAML file over an existing config so that
// fields absent from the file keep their current values.
func mergeFromFile(config *Config, path string) error {
	data, err := safe.ReadFile(path, nil)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	return nil
}

// Save saves the configuration to the default path.
func (l *Loader) Save(config *Config) error {
	path := l.ConfigPath()

	// Ensure directory exists
	dir := filepath.Dir(path)
	//nolint:gosec // G301: Directory needs standard permissions for traversal
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Config holds no secrets, use 0644
	//nolint:gosec // G306: Config file is not sensitive
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
