package profile

import "context"

// Profiler is the contract every profiling back end satisfies. Run executes
// the back end against the target it was constructed for and returns the
// collected record.
//
// For callable targets a back end invokes the call exactly once and stores
// its return value under ResultKey. Instances are single use: the runner
// constructs a fresh profiler for every run.
type Profiler interface {
	Run(ctx context.Context) (*Record, error)
}

// Constructor builds a profiler bound to a target.
type Constructor func(target Target) Profiler
