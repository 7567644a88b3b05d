// Package diag defines the diagnostic model shared by the tree validator,
// the document loader and the style resolver.
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary – line/column of the offending node in the original source.
//   - Notes – optional secondary positions for additional context.
//
// Producers emit through a Reporter; BagReporter collects diagnostics into a
// per-file Bag which supports sorting and deduplication. Rendering for the CLI
// lives in format.go.
package diag
