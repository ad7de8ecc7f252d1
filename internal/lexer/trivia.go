package lexer

import (
	"efguard/internal/diag"
	"efguard/internal/source"
	"efguard/internal/token"
)

// collectLeadingTrivia fills lx.hold with trivia up to the next token or EOF.
func (lx *Lexer) collectLeadingTrivia() {
	if lx.cursor.Off == 0 && lx.file.Flags&source.FileHadBOM != 0 {
		// the BOM stays in the tree as whitespace so the file round-trips
		lx.cursor.Off = 3
		lx.hold = append(lx.hold, token.Whitespace(string(lx.file.Content[:3])))
	}
	for !lx.cursor.EOF() {
		if lx.lineStart && !lx.pp.active() && !lx.conditionalDirectiveAhead() {
			lx.scanDisabledLines()
			continue
		}
		b := lx.cursor.Peek()
		switch {
		case isBlankByte(b):
			lx.hold = append(lx.hold, lx.scanWhitespace())
		case b == '\n' || b == '\r':
			lx.hold = append(lx.hold, lx.scanEOL())
		case b == '/' && lx.cursor.PeekAt(1) == '/':
			lx.hold = append(lx.hold, lx.scanLineComment())
			lx.lineStart = false
		case b == '/' && lx.cursor.PeekAt(1) == '*':
			lx.hold = append(lx.hold, lx.scanBlockComment())
			lx.lineStart = false
		case b == '#' && lx.lineStart:
			lx.hold = append(lx.hold, lx.scanDirective())
			lx.lineStart = false
		default:
			return
		}
	}
}

// collectTrailingTrivia takes same-line trivia up to and including the first EOL.
func (lx *Lexer) collectTrailingTrivia() []token.Trivia {
	var out []token.Trivia
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case isBlankByte(b):
			out = append(out, lx.scanWhitespace())
		case b == '\n' || b == '\r':
			out = append(out, lx.scanEOL())
			return out
		case b == '/' && lx.cursor.PeekAt(1) == '/':
			out = append(out, lx.scanLineComment())
		case b == '/' && lx.cursor.PeekAt(1) == '*':
			out = append(out, lx.scanBlockComment())
		default:
			return out
		}
	}
	return out
}

func (lx *Lexer) scanWhitespace() token.Trivia {
	m := lx.cursor.Mark()
	for isBlankByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return token.Trivia{Kind: token.TriviaWhitespace, Text: lx.text(lx.cursor.SpanFrom(m))}
}

func (lx *Lexer) scanEOL() token.Trivia {
	m := lx.cursor.Mark()
	lx.cursor.BumpEOL()
	lx.lineStart = true
	return token.Trivia{Kind: token.TriviaEndOfLine, Text: lx.text(lx.cursor.SpanFrom(m))}
}

func (lx *Lexer) scanLineComment() token.Trivia {
	m := lx.cursor.Mark()
	kind := token.TriviaLineComment
	if b0, b1, b2, ok := lx.cursor.Peek3(); ok && b0 == '/' && b1 == '/' && b2 == '/' {
		kind = token.TriviaDocComment
	}
	lx.skipToEOL()
	return token.Trivia{Kind: kind, Text: lx.text(lx.cursor.SpanFrom(m))}
}

func (lx *Lexer) scanBlockComment() token.Trivia {
	m := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.cursor.Bump()
	kind := token.TriviaBlockComment
	if lx.cursor.Peek() == '*' && lx.cursor.PeekAt(1) != '/' {
		kind = token.TriviaDocComment
	}
	for {
		if lx.cursor.EOF() {
			lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(m), "unterminated block comment")
			break
		}
		if lx.try2('*', '/') {
			break
		}
		lx.cursor.Bump()
	}
	return token.Trivia{Kind: kind, Text: lx.text(lx.cursor.SpanFrom(m))}
}

// scanDirective reads one directive line without its terminator and feeds
// it to the preprocessor.
func (lx *Lexer) scanDirective() token.Trivia {
	m := lx.cursor.Mark()
	lx.skipToEOL()
	sp := lx.cursor.SpanFrom(m)
	text := lx.text(sp)
	keyword := directiveKeyword(text)
	if keyword == "" {
		lx.warnLex(diag.LexBadDirective, sp, text)
	}
	tv := token.Trivia{Kind: token.DirectiveKind(keyword), Text: text}
	lx.pp.apply(lx, tv, sp)
	return tv
}

// scanDisabledLines consumes whole lines of an inactive region, up to the
// next conditional directive line, as a single DisabledText trivia.
func (lx *Lexer) scanDisabledLines() {
	m := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		if lx.conditionalDirectiveAhead() {
			break
		}
		lx.skipToEOL()
		lx.cursor.BumpEOL()
	}
	sp := lx.cursor.SpanFrom(m)
	if sp.Empty() {
		return
	}
	lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaDisabledText, Text: lx.text(sp)})
	lx.lineStart = true
}

// conditionalDirectiveAhead reports whether the line at the cursor holds an
// #if/#elif/#else/#endif directive. Only called at line start.
func (lx *Lexer) conditionalDirectiveAhead() bool {
	off := lx.cursor.Off
	content := lx.file.Content
	for off < lx.cursor.Limit && isBlankByte(content[off]) {
		off++
	}
	if off >= lx.cursor.Limit || content[off] != '#' {
		return false
	}
	end := off
	for end < lx.cursor.Limit && content[end] != '\n' && content[end] != '\r' {
		end++
	}
	switch token.DirectiveKind(directiveKeyword(string(content[off:end]))) {
	case token.TriviaIfDirective, token.TriviaElifDirective, token.TriviaElseDirective, token.TriviaEndIfDirective:
		return true
	default:
		return false
	}
}

// directiveKeyword extracts "if" from "#  if DEBUG".
func directiveKeyword(text string) string {
	i := 0
	if i < len(text) && text[i] == '#' {
		i++
	}
	for i < len(text) && isBlankByte(text[i]) {
		i++
	}
	start := i
	for i < len(text) && ((text[i] >= 'a' && text[i] <= 'z') || (text[i] >= 'A' && text[i] <= 'Z')) {
		i++
	}
	return text[start:i]
}
