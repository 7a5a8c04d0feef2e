// Package runner orchestrates profiling runs across a registry of profiler
// back ends.
//
// A Runner validates a configuration string (one single-character code per
// requested profiler), executes the requested back ends strictly in registry
// order, extracts the target's return value from the collected stats, and
// ships the sanitized stats to a collector. Execution is all or nothing: the
// first failing back end aborts the run and no partial stats escape.
//
// Typical use:
//
//	reg := runner.Default()
//	client := collector.New(collector.Config{}, logger)
//	r := runner.New(reg, client, logger, runner.Config{})
//
//	result, err := r.RunCall(ctx, compute, "cm", []any{1, 2}, nil)
//	if err != nil {
//	    return err
//	}
//	if result != runner.NoResult {
//	    fmt.Println("target returned", result)
//	}
//
// Configuration errors are reported as *AmbiguousConfigError (a code given
// twice) or *BadOptionError (a code with no registered back end); back end
// failures as *ProfilerError wrapping the underlying cause.
package runner
