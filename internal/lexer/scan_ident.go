package lexer

import (
	"unicode"

	"efguard/internal/diag"
	"efguard/internal/token"
)

// verbatimIdentAhead reports "@name", an identifier that may spell a keyword.
func (lx *Lexer) verbatimIdentAhead() bool {
	b1 := lx.cursor.PeekAt(1)
	return isIdentStartByte(b1) || b1 >= utf8RuneSelf
}

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	m := lx.cursor.Mark()
	verbatim := lx.cursor.Eat('@')

	if r, _ := lx.peekRune(); r != '_' && !unicode.IsLetter(r) {
		lx.bumpRune()
		sp := lx.cursor.SpanFrom(m)
		lx.errLex(diag.LexUnknownChar, sp, "unknown character "+lx.text(sp))
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	lx.bumpRune()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r, _ := lx.peekRune()
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)) {
			break
		}
		lx.bumpRune()
	}

	sp := lx.cursor.SpanFrom(m)
	text := lx.text(sp)
	kind := token.Ident
	if !verbatim {
		if kw, ok := token.LookupKeyword(text); ok {
			kind = kw
		}
	}
	return token.Token{Kind: kind, Span: sp, Text: text}
}
