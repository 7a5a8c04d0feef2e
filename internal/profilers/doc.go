// Package profilers implements the built-in profiling back ends: memory
// usage ("m"), CPU flame stacks ("c"), allocation line heat ("h"), and a
// flat function table ("p").
//
// The back ends implement no samplers of their own. They orchestrate the
// runtime's existing engines (runtime.MemStats, runtime/pprof) for in-process
// call targets, and the net/http/pprof debug endpoints for process targets,
// then reduce the raw profiles to compact records.
package profilers
