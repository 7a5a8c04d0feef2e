package profilers

import (
	"github.com/rs/zerolog"

	"github.com/multiprof/multiprof/internal/baseline"
	"github.com/multiprof/multiprof/internal/constants"
	"github.com/multiprof/multiprof/pkg/profile"
)

// Config holds settings shared by the built-in profilers.
type Config struct {
	// Baseline supplies the pre-run RSS reference for the memory profiler.
	// Nil means the shared process-wide provider.
	Baseline baseline.Provider
	// FetchSeconds is the CPU sampling window, in seconds, used when
	// profiling a process target. Zero means constants.DefaultFetchSeconds.
	FetchSeconds int
}

// Suite builds the built-in profilers against a shared logger and config.
// A Suite is cheap and stateless; every constructed profiler is fresh.
type Suite struct {
	logger   zerolog.Logger
	baseline baseline.Provider
	fetchSec int
}

// NewSuite creates a profiler suite.
func NewSuite(logger zerolog.Logger, config Config) *Suite {
	if config.Baseline == nil {
		config.Baseline = baseline.Shared()
	}
	if config.FetchSeconds == 0 {
		config.FetchSeconds = constants.DefaultFetchSeconds
	}

	return &Suite{
		logger:   logger,
		baseline: config.Baseline,
		fetchSec: config.FetchSeconds,
	}
}

// Memory builds the memory profiler ("m").
func (s *Suite) Memory(target profile.Target) profile.Profiler {
	return &memoryProfiler{
		target:   target,
		baseline: s.baseline,
		logger:   s.logger.With().Str("component", "memory_profiler").Logger(),
	}
}

// FlameGraph builds the CPU flame profiler ("c").
func (s *Suite) FlameGraph(target profile.Target) profile.Profiler {
	return &flameProfiler{
		target:   target,
		fetchSec: s.fetchSec,
		logger:   s.logger.With().Str("component", "flame_profiler").Logger(),
	}
}

// CodeHeat builds the allocation line heat profiler ("h").
func (s *Suite) CodeHeat(target profile.Target) profile.Profiler {
	return &heatProfiler{
		target: target,
		logger: s.logger.With().Str("component", "heat_profiler").Logger(),
	}
}

// Functions builds the flat function table profiler ("p").
func (s *Suite) Functions(target profile.Target) profile.Profiler {
	return &functionsProfiler{
		target:   target,
		fetchSec: s.fetchSec,
		logger:   s.logger.With().Str("component", "functions_profiler").Logger(),
	}
}

var defaultSuite = NewSuite(zerolog.Nop(), Config{})

// NewMemory builds the memory profiler from the default suite.
func NewMemory(target profile.Target) profile.Profiler {
	return defaultSuite.Memory(target)
}

// NewFlameGraph builds the CPU flame profiler from the default suite.
func NewFlameGraph(target profile.Target) profile.Profiler {
	return defaultSuite.FlameGraph(target)
}

// NewCodeHeat builds the allocation line heat profiler from the default suite.
func NewCodeHeat(target profile.Target) profile.Profiler {
	return defaultSuite.CodeHeat(target)
}

// NewFunctions builds the flat function table profiler from the default suite.
func NewFunctions(target profile.Target) profile.Profiler {
	return defaultSuite.Functions(target)
}
