package runner

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/multiprof/multiprof/pkg/profile"
)

// Sender ships sanitized stats to a collector. *collector.Client satisfies
// it; tests substitute fakes.
type Sender interface {
	Send(ctx context.Context, stats *profile.Stats) error
}

// Config contains runner configuration options.
type Config struct {
	// Verbose elevates per-profiler progress logs from debug to info level.
	Verbose bool
}

// Runner executes profiling runs against a registry of back ends.
type Runner struct {
	registry Registry
	sender   Sender
	logger   zerolog.Logger
	verbose  bool
}

// New creates a runner. A nil sender disables transmission, leaving
// RunProfilers and ExtractResult as the whole pipeline.
func New(registry Registry, sender Sender, logger zerolog.Logger, config Config) *Runner {
	return &Runner{
		registry: registry,
		sender:   sender,
		logger:   logger.With().Str("component", "runner").Logger(),
		verbose:  config.Verbose,
	}
}

// RunProfilers validates the configuration and executes the requested back
// ends strictly in registry order against the target. Every back end is
// constructed fresh from the same target value. The first failure aborts
// the sequence, discards the records collected so far, and is returned as
// *ProfilerError.
func (r *Runner) RunProfilers(ctx context.Context, target profile.Target, configuration string) (*profile.Stats, error) {
	logger := r.runLogger()
	return r.runProfilers(ctx, logger, target, configuration)
}

// Run executes the full pipeline: run the configured profilers, extract the
// target's return value, and ship the sanitized stats to the collector.
//
// The returned value is the target's return value, or NoResult when no
// back end recorded one. A transport failure is returned as the error while
// the extracted value is still returned alongside it; the computed stats
// are complete in memory at that point and the send is not retried.
func (r *Runner) Run(ctx context.Context, target profile.Target, configuration string) (any, error) {
	logger := r.runLogger()

	stats, err := r.runProfilers(ctx, logger, target, configuration)
	if err != nil {
		return NoResult, err
	}

	result, found := ExtractResult(stats)
	logger.Debug().Bool("has_result", found).Msg("Extracted target result")

	if r.sender != nil {
		if err := r.sender.Send(ctx, stats); err != nil {
			return result, err
		}
	}

	return result, nil
}

// RunCall profiles one invocation of fn under the given configuration and
// returns its result. Nil args and kwargs become fresh empty collections.
func (r *Runner) RunCall(ctx context.Context, fn profile.Func, configuration string, args []any, kwargs map[string]any) (any, error) {
	return r.Run(ctx, profile.NewCall(fn, args, kwargs), configuration)
}

func (r *Runner) runLogger() zerolog.Logger {
	return r.logger.With().Str("run_id", uuid.NewString()).Logger()
}

func (r *Runner) runProfilers(ctx context.Context, logger zerolog.Logger, target profile.Target, configuration string) (*profile.Stats, error) {
	requested, err := r.registry.Validate(configuration)
	if err != nil {
		return nil, err
	}

	level := zerolog.DebugLevel
	if r.verbose {
		level = zerolog.InfoLevel
	}

	stats := profile.NewStats()
	for _, entry := range r.registry {
		if !requested[entry.Option] {
			continue
		}

		logger.WithLevel(level).
			Str("profiler", entry.Option.String()).
			Msg("Running profiler")

		rec, err := entry.New(target).Run(ctx)
		if err != nil {
			logger.Error().
				Err(err).
				Str("profiler", entry.Option.String()).
				Msg("Profiler failed, aborting run")
			return nil, &ProfilerError{Option: entry.Option, Err: err}
		}
		stats.Set(entry.Option, rec)
	}

	logger.WithLevel(level).
		Int("profilers", stats.Len()).
		Msg("Profiling run complete")

	return stats, nil
}
