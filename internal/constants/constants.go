// Package constants defines shared configuration constants.
package constants

var (
	ConfigFile = "config.yaml"

	DefaultDir = ".multiprof"

	// DefaultFetchSeconds is the CPU sampling window for process targets.
	DefaultFetchSeconds = 2
)
