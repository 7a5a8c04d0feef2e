// Package profile defines the data model shared by the multiprof
// orchestration core and its profiling back ends.
//
// A profiling run targets either a single invocation of an in-process
// callable or an already-running process identified by an opaque reference.
// Each back end produces a Record (an ordered set of fields), and the runner
// aggregates records into Stats keyed by the back end's option code. Both
// structures preserve insertion order through JSON encoding so that remote
// collectors receive fields and sections in a deterministic order.
//
// Back ends implement the Profiler interface and are registered through a
// Constructor:
//
//	func NewWallClock(target profile.Target) profile.Profiler {
//	    return &wallClock{target: target}
//	}
//
//	func (w *wallClock) Run(ctx context.Context) (*profile.Record, error) {
//	    rec := profile.NewRecord()
//	    start := time.Now()
//	    result, err := w.target.Call().Invoke()
//	    if err != nil {
//	        return nil, err
//	    }
//	    rec.Set("elapsed_ms", time.Since(start).Milliseconds())
//	    rec.Set(profile.ResultKey, result)
//	    return rec, nil
//	}
//
// The ResultKey field is reserved: for callable targets it carries the
// call's return value back to the caller and is stripped from every record
// before stats leave the process.
package profile
