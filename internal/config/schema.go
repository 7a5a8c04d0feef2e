// Package config provides configuration loading and management.
//
// Configuration is layered: built-in defaults, then the optional
// ~/.multiprof/config.yaml file, then MULTIPROF_* environment variables.
// Command-line flags are applied on top by the CLI.
package config

// Config represents the multiprof configuration file.
type Config struct {
	Collector CollectorConfig `yaml:"collector"`
	Profiling ProfilingConfig `yaml:"profiling"`
	Log       LogConfig       `yaml:"log"`
}

// CollectorConfig addresses the stats collector endpoint.
type CollectorConfig struct {
	Host string `yaml:"host" env:"MULTIPROF_COLLECTOR_HOST"`
	Port int    `yaml:"port" env:"MULTIPROF_COLLECTOR_PORT"`
	// CompressionLevel is the gzip level for shipped payloads.
	// Zero means the gzip default.
	CompressionLevel int `yaml:"compression_level,omitempty" env:"MULTIPROF_COLLECTOR_COMPRESSION_LEVEL"`
}

// ProfilingConfig holds profiler run settings.
type ProfilingConfig struct {
	// FetchSeconds is the CPU sampling window for process targets.
	FetchSeconds int `yaml:"fetch_seconds" env:"MULTIPROF_PROFILING_FETCH_SECONDS"`
	// Verbose promotes per-profiler progress logs to info level.
	Verbose bool `yaml:"verbose" env:"MULTIPROF_VERBOSE"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level" env:"MULTIPROF_LOG_LEVEL"`
	Pretty bool   `yaml:"pretty" env:"MULTIPROF_LOG_PRETTY"`
}
