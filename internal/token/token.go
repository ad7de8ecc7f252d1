package token

import (
	"strings"

	"efguard/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind     Kind
	Span     source.Span
	Text     string
	Leading  []Trivia
	Trailing []Trivia
}

// IsLiteral reports whether the token is a string, char or numeric literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case StringLit, CharLit, NumberLit:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is one of the recognized keywords.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwNew && t.Kind <= KwDo
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsWord reports whether the token is an identifier or keyword.
func (t Token) IsWord() bool { return t.IsIdent() || t.IsKeyword() }

// FullText returns leading trivia, text and trailing trivia concatenated.
func (t Token) FullText() string {
	var b strings.Builder
	for _, tv := range t.Leading {
		b.WriteString(tv.Text)
	}
	b.WriteString(t.Text)
	for _, tv := range t.Trailing {
		b.WriteString(tv.Text)
	}
	return b.String()
}
