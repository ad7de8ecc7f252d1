package lexer

import (
	"efguard/internal/diag"
	"efguard/internal/token"
)

// Multi-byte operators, longest first. '>' is never merged with a following
// '>' so generic argument lists close one token at a time.
var ops3 = []string{"<<=", "??="}

var ops2 = []string{
	"=>", "??", "==", "!=", "<=", ">=", "&&", "||", "++", "--",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<", "->", "::",
}

var single = map[byte]token.Kind{
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	'[': token.LBracket,
	']': token.RBracket,
	'.': token.Dot,
	',': token.Comma,
	';': token.Semicolon,
	':': token.Colon,
	'?': token.Question,
	'=': token.Assign,
	'<': token.Lt,
	'>': token.Gt,
	'!': token.Bang,
	'+': token.Operator,
	'-': token.Operator,
	'*': token.Operator,
	'/': token.Operator,
	'%': token.Operator,
	'&': token.Operator,
	'|': token.Operator,
	'^': token.Operator,
	'~': token.Operator,
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	m := lx.cursor.Mark()
	for _, op := range ops3 {
		if lx.try3(op[0], op[1], op[2]) {
			return lx.opToken(token.Operator, m)
		}
	}
	for _, op := range ops2 {
		if lx.try2(op[0], op[1]) {
			switch op {
			case "=>":
				return lx.opToken(token.FatArrow, m)
			case "??":
				return lx.opToken(token.QuestionQuestion, m)
			}
			return lx.opToken(token.Operator, m)
		}
	}
	if k, ok := single[lx.cursor.Peek()]; ok {
		lx.cursor.Bump()
		return lx.opToken(k, m)
	}

	lx.bumpRune()
	sp := lx.cursor.SpanFrom(m)
	lx.errLex(diag.LexUnknownChar, sp, "unknown character "+lx.text(sp))
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) opToken(k token.Kind, m Mark) token.Token {
	sp := lx.cursor.SpanFrom(m)
	return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
}
