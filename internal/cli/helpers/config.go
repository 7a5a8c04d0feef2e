// Package helpers provides shared plumbing for CLI commands.
package helpers

import (
	"fmt"

	"github.com/multiprof/multiprof/internal/config"
)

// LoadConfig loads the layered configuration. With an explicit path the
// file must exist; otherwise the default location is used and may be
// absent, leaving defaults plus environment overrides.
func LoadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}

	loader, err := config.NewLoader()
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}
