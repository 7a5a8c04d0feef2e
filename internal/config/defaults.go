package config

import (
	"github.com/multiprof/multiprof/internal/constants"
	"github.com/multiprof/multiprof/pkg/collector"
)

// DefaultConfig returns the built-in configuration used when no file or
// environment overrides are present.
func DefaultConfig() *Config {
	return &Config{
		Collector: CollectorConfig{
			Host: collector.DefaultHost,
			Port: collector.DefaultPort,
		},
		Profiling: ProfilingConfig{
			FetchSeconds: constants.DefaultFetchSeconds,
		},
		Log: LogConfig{
			Level:  "info",
			Pretty: true,
		},
	}
}
