// Package diag defines the diagnostic model shared by the lexer, the parser
// and the driver.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form
//     such as LEX1002 or SYN2003.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages for additional context.
//   - Fixes – optional text edits, e.g. inserting a missing ';'.
//
// # Emitting diagnostics
//
// Phases use a diag.Reporter to decouple emission from storage. The parser
// constructs a ReportBuilder via ReportError/ReportInfo and chains WithNote /
// WithFix before calling Emit. BagReporter aggregates diagnostics into a Bag,
// which supports sorting, deduplication and a size cap.
//
// Package diag does not perform any terminal formatting; rendering lives in
// internal/diagfmt. The only textual form produced here is the golden one used
// by tests and the disk cache key checks.
package diag
