// Package trace records what a blanklines run did as a stream of span and
// point events.
//
//	blanklines fmt --trace=- --trace-level=detail ./trees
//
// Spans nest through parent ids. A file span tags every event below it
// with the document path, so interleaved output from parallel workers can
// be split per file. Levels select how deep events go:
//
//	off     nothing
//	error   only spans that ended with an error
//	phase   driver and stage spans
//	detail  plus per-file spans and points
//	debug   plus one point per stamped annotation
//
// Events go to a stream (text or NDJSON), to an in-memory ring dumped at
// exit, or to both. The tracer travels in a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "fmt", 0)
//	defer span.End("")
package trace
