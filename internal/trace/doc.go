// Package trace is pepfix's logging layer.
//
// A Tracer receives structured events (span begin/end and instant points)
// and writes them as text or NDJSON. Tracing is off by default and costs a
// context lookup when disabled.
//
// # Usage
//
//	pepfix fix -o --trace=- --trace-level=detail src/
//
// # Levels
//
//   - LevelOff: no output
//   - LevelError: failures only
//   - LevelPhase: driver operations
//   - LevelDetail: per-file processing
//   - LevelDebug: per-rule events
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, "fix", 0)
//	defer span.End("")
package trace
