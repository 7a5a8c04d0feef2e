package runner

import (
	"fmt"

	"github.com/multiprof/multiprof/pkg/profile"
)

// AmbiguousConfigError reports a configuration string that names the same
// profiler code more than once.
type AmbiguousConfigError struct {
	Config string
}

func (e *AmbiguousConfigError) Error() string {
	return fmt.Sprintf("profiler configuration %q is ambiguous", e.Config)
}

// BadOptionError reports a configuration code with no registered profiler.
type BadOptionError struct {
	Option profile.Option
}

func (e *BadOptionError) Error() string {
	return fmt.Sprintf("unknown profiler option %q", e.Option)
}

// ProfilerError reports a back end failure that aborted a run. It wraps the
// back end's error.
type ProfilerError struct {
	Option profile.Option
	Err    error
}

func (e *ProfilerError) Error() string {
	return fmt.Sprintf("profiler %q failed: %v", e.Option, e.Err)
}

func (e *ProfilerError) Unwrap() error {
	return e.Err
}
