package config

import (
	"fmt"
	"strings"
)

// Validator is the interface for validating configuration.
type Validator interface {
	Validate() error
}

// ValidationError represents a single validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// MultiValidationError represents multiple validation errors.
type MultiValidationError struct {
	Errors []ValidationError
}

// Error implements the error interface.
func (e *MultiValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "no validation errors"
	}

	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("validation failed with %d errors:\n", len(e.Errors)))
	for i, err := range e.Errors {
		builder.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return builder.String()
}

// Validate validates Config.
func (c *Config) Validate() error {
	var errors []ValidationError

	// Validate collector address
	if c.Collector.Host == "" {
		errors = append(errors, ValidationError{
			Field:   "collector.host",
			Message: "collector host is required",
		})
	}

	if c.Collector.Port <= 0 || c.Collector.Port > 65535 {
		errors = append(errors, ValidationError{
			Field:   "collector.port",
			Message: "collector port must be between 1 and 65535",
		})
	}

	// Validate compression level (gzip range; 0 selects the default level)
	if c.Collector.CompressionLevel < -2 || c.Collector.CompressionLevel > 9 {
		errors = append(errors, ValidationError{
			Field:   "collector.compression_level",
			Message: "compression level must be between -2 and 9",
		})
	}

	// Validate fetch window
	if c.Profiling.FetchSeconds <= 0 {
		errors = append(errors, ValidationError{
			Field:   "profiling.fetch_seconds",
			Message: "fetch seconds must be positive",
		})
	}

	// Validate log level
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if c.Log.Level != "" && !validLevels[c.Log.Level] {
		errors = append(errors, ValidationError{
			Field:   "log.level",
			Message: "log level must be one of: trace, debug, info, warn, error",
		})
	}

	if len(errors) > 0 {
		return &MultiValidationError{Errors: errors}
	}
	return nil
}
