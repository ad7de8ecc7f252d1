package diag

import (
	"efguard/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is an immutable finding. Primary is source.NoSpan for document-level
// findings.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Args     []string
	Notes    []Note
}

// HasLocation reports whether the diagnostic points into a file.
func (d Diagnostic) HasLocation() bool {
	return d.Primary.IsValid()
}

// Arg returns the i-th message argument or "".
func (d Diagnostic) Arg(i int) string {
	if i < 0 || i >= len(d.Args) {
		return ""
	}
	return d.Args[i]
}
