// Package diag defines the diagnostic model shared by the lexer and the analyzers.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with a stable string ID.
//     The code alone determines the title, the message template and the default
//     severity.
//   - Message – the template rendered with Args.
//   - Primary – the source.Span pointing to the issue, or source.NoSpan for
//     document-level findings (a missing settings resource).
//   - Notes – optional secondary spans/messages.
//
// Diagnostics are values: once built they are never mutated. Producers emit them
// through a Reporter; Bag collects, sorts and deduplicates them.
//
// Package diag performs no formatting or IO. Rendering lives in internal/diagfmt;
// fixes are computed on demand by internal/analysis fixers.
package diag
