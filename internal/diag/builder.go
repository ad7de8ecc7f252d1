package diag

import (
	"fmt"

	"efguard/internal/source"
)

// New builds a diagnostic with the code's default severity and message template.
func New(code Code, primary source.Span, args ...string) Diagnostic {
	return NewWithSeverity(code.DefaultSeverity(), code, primary, args...)
}

// NewWithSeverity builds a diagnostic with an explicit severity.
func NewWithSeverity(sev Severity, code Code, primary source.Span, args ...string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  render(code.Format(), args),
		Args:     append([]string(nil), args...),
	}
}

// NewError is a shortcut for lexer-style errors with a free-form message.
func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: SevError,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

// WithNote returns a copy of d with an extra note.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	notes := make([]Note, 0, len(d.Notes)+1)
	notes = append(notes, d.Notes...)
	d.Notes = append(notes, Note{Span: sp, Msg: msg})
	return d
}

// WithSeverity returns a copy of d with another severity.
func (d Diagnostic) WithSeverity(sev Severity) Diagnostic {
	d.Severity = sev
	return d
}

func render(format string, args []string) string {
	if len(args) == 0 {
		return format
	}
	vals := make([]any, len(args))
	for i, a := range args {
		vals[i] = a
	}
	return fmt.Sprintf(format, vals...)
}
