// Package diag defines the diagnostic model shared by the scanner driver and
// the CLI.
//
// The scanner itself never reports anything: malformed input becomes an
// Error token. The lexer driver turns those tokens into Diagnostic records
// through a Reporter so that the CLI can print them next to the token stream.
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages.
//
// BagReporter aggregates diagnostics into a Bag, which supports capping,
// sorting and deduplication. Rendering lives in internal/diagfmt.
package diag
