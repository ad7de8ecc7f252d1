package lexer

import "unicode/utf8"

const utf8RuneSelf = utf8.RuneSelf

func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isHex(b byte) bool {
	return isDec(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isBlankByte(b byte) bool {
	// space, tab, vertical tab, form feed
	return b == ' ' || b == '\t' || b == '\v' || b == '\f'
}

// peekRune decodes the rune at the cursor without moving it.
func (lx *Lexer) peekRune() (rune, int) {
	if lx.cursor.EOF() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRune(lx.file.Content[lx.cursor.Off:])
}

func (lx *Lexer) bumpRune() rune {
	r, size := lx.peekRune()
	for i := 0; i < size; i++ {
		lx.cursor.Bump()
	}
	return r
}

// try2 consumes the two bytes a, b when they are next.
func (lx *Lexer) try2(a, b byte) bool {
	b0, b1, ok := lx.cursor.Peek2()
	if ok && b0 == a && b1 == b {
		lx.cursor.Bump()
		lx.cursor.Bump()
		return true
	}
	return false
}

func (lx *Lexer) try3(a, b, c byte) bool {
	b0, b1, b2, ok := lx.cursor.Peek3()
	if ok && b0 == a && b1 == b && b2 == c {
		lx.cursor.Bump()
		lx.cursor.Bump()
		lx.cursor.Bump()
		return true
	}
	return false
}

// skipToEOL advances up to (not including) the next line terminator.
func (lx *Lexer) skipToEOL() {
	for !lx.cursor.EOF() && !lx.cursor.AtEOL() {
		lx.cursor.Bump()
	}
}
