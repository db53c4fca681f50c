// Package trace records what the viv compiler is doing while it does it.
//
// Each pipeline stage (tokenize, parse, resolve, lower, optimize, emit,
// link, run) opens a pass span; the CLI opens one driver span around the
// whole command. Spans are written either straight to a writer
// (StreamTracer), into a bounded in-memory buffer that is dumped when a
// command fails (RingTracer), or both.
//
//	viv build --trace=- --trace-level=phase main.viv
//
// Levels filter by scope:
//
//   - LevelOff: nothing
//   - LevelError: only the ring dump on failure
//   - LevelPhase: driver and pass spans
//   - LevelDetail: plus per-function events
//   - LevelDebug: everything
//
// Tracers travel through the pipeline inside a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
//	defer span.End("")
package trace
