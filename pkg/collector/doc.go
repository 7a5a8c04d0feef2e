// Package collector ships profiling stats to a remote collector and hosts a
// development sink that accepts them.
//
// The wire protocol is a single HTTP POST to http://host:port/ whose body is
// the gzip-compressed, order-preserving JSON encoding of profile.Stats. The
// client sends no metadata headers, never retries, and does not inspect the
// response; a transport-level error is the only failure signal. The default
// endpoint is localhost:8000.
//
// Server is the receiving side used by `multiprof serve` and by tests: it
// decompresses and decodes posted payloads, logs a summary, and keeps the
// most recent stats in memory for inspection.
package collector
