package lexer

import "efguard/internal/token"

// scanNumber reads integer and real literals including hex/binary prefixes,
// digit separators, exponents and type suffixes (10, 0x1F, 1_000, 1.5e3f, 2UL).
func (lx *Lexer) scanNumber() token.Token {
	m := lx.cursor.Mark()

	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'x', 'X', 'b', 'B':
			lx.cursor.Bump()
			lx.cursor.Bump()
			for isHex(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
				lx.cursor.Bump()
			}
			lx.scanNumberSuffix()
			sp := lx.cursor.SpanFrom(m)
			return token.Token{Kind: token.NumberLit, Span: sp, Text: lx.text(sp)}
		}
	}

	lx.scanDigits()
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		lx.cursor.Bump()
		lx.scanDigits()
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		next := lx.cursor.PeekAt(1)
		if isDec(next) || ((next == '+' || next == '-') && isDec(lx.cursor.PeekAt(2))) {
			lx.cursor.Bump()
			if next == '+' || next == '-' {
				lx.cursor.Bump()
			}
			lx.scanDigits()
		}
	}
	lx.scanNumberSuffix()

	sp := lx.cursor.SpanFrom(m)
	return token.Token{Kind: token.NumberLit, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) scanDigits() {
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) scanNumberSuffix() {
	for {
		switch lx.cursor.Peek() {
		case 'u', 'U', 'l', 'L', 'f', 'F', 'd', 'D', 'm', 'M':
			lx.cursor.Bump()
		default:
			return
		}
	}
}
