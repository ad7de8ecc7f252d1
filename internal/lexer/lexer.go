package lexer

import (
	"efguard/internal/source"
	"efguard/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	pp     preproc
	look   *token.Token
	hold   []token.Trivia // leading trivia collected for the next token
	// lineStart is true while only whitespace has been seen on the current line.
	lineStart bool
	done      bool
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:      file,
		cursor:    NewCursor(file),
		opts:      opts,
		pp:        newPreproc(opts.Symbols),
		lineStart: true,
	}
}

// Next returns the next significant token with its leading and trailing trivia.
// The EOF token carries whatever trivia follows the last token; after EOF
// Next keeps returning bare EOF tokens.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	if lx.done {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	// 1) leading trivia, including directives and disabled regions
	lx.collectLeadingTrivia()

	// 2) EOF keeps the remaining trivia so the file round-trips
	if lx.cursor.EOF() {
		lx.done = true
		lx.pp.finish(lx)
		tok := token.Token{
			Kind:    token.EOF,
			Span:    lx.emptySpan(),
			Leading: lx.hold,
		}
		lx.hold = nil
		return tok
	}

	// 3) the token itself
	var tok token.Token
	ch := lx.cursor.Peek()
	switch {
	case ch == '@' && lx.verbatimIdentAhead():
		tok = lx.scanIdentOrKeyword()
	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		tok = lx.scanIdentOrKeyword()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '.' && isDec(lx.cursor.PeekAt(1)):
		tok = lx.scanNumber()
	case ch == '"' || lx.stringPrefixAhead():
		tok = lx.scanString()
	case ch == '\'':
		tok = lx.scanChar()
	default:
		tok = lx.scanOperatorOrPunct()
	}
	lx.lineStart = false

	// 4) attach trivia
	tok.Leading = lx.hold
	lx.hold = nil
	tok.Trailing = lx.collectTrailingTrivia()
	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// All lexes the whole file, EOF token included.
func (lx *Lexer) All() []token.Token {
	var out []token.Token
	for {
		t := lx.Next()
		out = append(out, t)
		if t.Kind == token.EOF {
			return out
		}
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}
