package lexer

import (
	"efguard/internal/diag"
	"efguard/internal/token"
)

// stringPrefixAhead reports @", $", $@" or @$" at the cursor.
func (lx *Lexer) stringPrefixAhead() bool {
	b0 := lx.cursor.Peek()
	if b0 != '@' && b0 != '$' {
		return false
	}
	b1 := lx.cursor.PeekAt(1)
	if b1 == '"' {
		return true
	}
	return (b1 == '@' || b1 == '$') && b1 != b0 && lx.cursor.PeekAt(2) == '"'
}

// scanString reads regular, verbatim and interpolated string literals.
func (lx *Lexer) scanString() token.Token {
	m := lx.cursor.Mark()
	verbatim, interp := false, false
	for {
		switch lx.cursor.Peek() {
		case '@':
			verbatim = true
			lx.cursor.Bump()
			continue
		case '$':
			interp = true
			lx.cursor.Bump()
			continue
		}
		break
	}
	lx.cursor.Bump() // opening quote

	for {
		if lx.cursor.EOF() || (!verbatim && lx.cursor.AtEOL()) {
			lx.errLex(diag.LexUnterminatedString, lx.cursor.SpanFrom(m), "unterminated string literal")
			break
		}
		c := lx.cursor.Bump()
		if c == '"' {
			if verbatim && lx.cursor.Eat('"') {
				continue
			}
			break
		}
		if c == '\\' && !verbatim {
			if !lx.cursor.EOF() && !lx.cursor.AtEOL() {
				lx.bumpRune()
			}
			continue
		}
		if interp && c == '{' {
			if lx.cursor.Eat('{') {
				continue
			}
			lx.scanInterpolationHole()
		}
	}

	sp := lx.cursor.SpanFrom(m)
	return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp)}
}

// scanInterpolationHole skips the expression inside {...} of an interpolated
// string, including nested strings and braces.
func (lx *Lexer) scanInterpolationHole() {
	depth := 1
	for !lx.cursor.EOF() {
		switch b := lx.cursor.Peek(); {
		case b == '"' || lx.stringPrefixAhead():
			lx.scanString()
		case b == '\'':
			lx.scanChar()
		case b == '{':
			depth++
			lx.cursor.Bump()
		case b == '}':
			lx.cursor.Bump()
			depth--
			if depth == 0 {
				return
			}
		default:
			lx.cursor.Bump()
		}
	}
}

func (lx *Lexer) scanChar() token.Token {
	m := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote
	for {
		if lx.cursor.EOF() || lx.cursor.AtEOL() {
			lx.errLex(diag.LexUnterminatedChar, lx.cursor.SpanFrom(m), "unterminated character literal")
			break
		}
		c := lx.cursor.Bump()
		if c == '\'' {
			break
		}
		if c == '\\' && !lx.cursor.EOF() && !lx.cursor.AtEOL() {
			lx.bumpRune()
		}
	}
	sp := lx.cursor.SpanFrom(m)
	return token.Token{Kind: token.CharLit, Span: sp, Text: lx.text(sp)}
}
