// Package trace records what the darwin driver is doing: which phases run,
// which files are scanned, whether the token cache was hit.
//
// Enable it from the command line:
//
//	darwin tokenize --trace=- --trace-level=file src/
//
// Tracers:
//
//   - Nop: zero overhead when disabled
//   - StreamTracer: writes every event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events for a dump after a failure
//   - MultiTracer: fans out to several tracers
//
// Levels select scopes: phase emits driver and pass boundaries, file adds
// per-file events, debug adds everything.
//
// The tracer travels through context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "scan", 0)
//	defer span.End("")
package trace
