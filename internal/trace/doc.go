// Package trace provides a tracing subsystem for the StoryScript front-end.
//
// The trace package tracks driver operations, lex/parse passes and per-file
// work to help diagnose slow directory checks and parser recovery storms.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	storyc check --trace=- --trace-level=detail rooms/
//
// # Architecture
//
//   - Nop: Zero-overhead no-op tracer when disabled
//   - StreamTracer: Immediate write to output (file/stderr)
//   - RingTracer: Circular buffer, dumped on demand
//   - MultiTracer: Combines multiple tracers
//
// # Levels and scopes
//
//   - LevelPhase: ScopeDriver and ScopePass events
//   - LevelDetail: adds ScopeFile events
//   - LevelDebug: adds ScopeNode events (parser recoveries)
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "parse", parentID)
//	defer span.End("")
package trace
