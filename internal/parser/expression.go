package parser

import (
	"efguard/internal/syntax"
	"efguard/internal/token"
)

// parseExpression returns nil when no expression starts at the cursor.
func (p *Parser) parseExpression() *syntax.Node {
	if l := p.tryLambda(); l != nil {
		return l
	}
	lhs := p.parseConditional()
	if lhs == nil {
		return nil
	}
	if isAssignOp(p.peek()) {
		op := p.bump()
		return syntax.NewNode(syntax.Assignment, lhs, op, p.parseExpression())
	}
	return lhs
}

// parseConditional parses `cond ? a : b`. Without a ':' the '?' is left alone.
func (p *Parser) parseConditional() *syntax.Node {
	cond := p.parseBinary(1)
	if cond == nil || !p.at(token.Question) {
		return cond
	}
	start := p.mark()
	q := p.bump()
	whenTrue := p.parseExpression()
	if whenTrue == nil || !p.at(token.Colon) {
		p.reset(start)
		return cond
	}
	colon := p.bump()
	return syntax.NewNode(syntax.Conditional, cond, q, whenTrue, colon, p.parseExpression())
}

func (p *Parser) parseBinary(minPrec int) *syntax.Node {
	lhs := p.parseUnary()
	if lhs == nil {
		return nil
	}
	for {
		prec := binaryPrec(p.peek())
		if prec == 0 || prec < minPrec {
			return lhs
		}
		start := p.mark()
		op := p.bump()
		var rhs *syntax.Node
		if isTypeTestOp(op) {
			if t := p.parseType(); t != nil {
				items := append([]syntax.Element{lhs, op}, t...)
				lhs = syntax.NewNode(syntax.Binary, items...)
				continue
			}
		}
		rhs = p.parseBinary(prec + 1)
		if rhs == nil {
			p.reset(start)
			return lhs
		}
		lhs = syntax.NewNode(syntax.Binary, lhs, op, rhs)
	}
}

func isTypeTestOp(t *syntax.Token) bool {
	return t.Kind == token.Ident && (t.Text == "is" || t.Text == "as")
}

func (p *Parser) parseUnary() *syntax.Node {
	if isPrefixOp(p.peek()) {
		if p.atWord("await") && !p.awaitOperandAhead() {
			return p.parsePostfix()
		}
		op := p.bump()
		operand := p.parseUnary()
		return syntax.NewNode(syntax.Unary, op, operand)
	}
	return p.parsePostfix()
}

// awaitOperandAhead tells `await x` from an identifier named await.
func (p *Parser) awaitOperandAhead() bool {
	switch p.peekN(1).Kind {
	case token.Ident, token.KwNew, token.LParen, token.StringLit, token.NumberLit:
		return true
	}
	return false
}

// tryLambda parses `x => body`, `async x => body`, `(a, b) => body` and
// `async (a) => body`.
func (p *Parser) tryLambda() *syntax.Node {
	i := p.pos
	if p.kindAt(i) == token.Ident && p.textAt(i) == "async" &&
		(p.kindAt(i+1) == token.Ident || p.kindAt(i+1) == token.LParen) {
		i++
	}
	switch p.kindAt(i) {
	case token.Ident:
		if p.kindAt(i+1) != token.FatArrow {
			return nil
		}
	case token.LParen:
		end := p.matching(i)
		if end < 0 || p.kindAt(end+1) != token.FatArrow {
			return nil
		}
	default:
		return nil
	}
	var items []syntax.Element
	for p.pos < i {
		items = append(items, p.bump())
	}
	if p.at(token.LParen) {
		items = append(items, p.parseRawGroup()...)
	} else {
		items = append(items, p.bump())
	}
	items = append(items, p.bump()) // =>
	if p.at(token.LBrace) {
		items = append(items, p.parseBlock())
	} else if e := p.parseExpression(); e != nil {
		items = append(items, e)
	}
	return syntax.NewNode(syntax.Lambda, items...)
}

func (p *Parser) parsePrimary() *syntax.Node {
	t := p.peek()
	switch t.Kind {
	case token.Ident:
		switch t.Text {
		case "true", "false", "null", "default":
			if !p.peekNIs(1, token.LParen) {
				return syntax.NewNode(syntax.Literal, p.bump())
			}
		}
		return p.parseSimpleName(false)
	case token.StringLit, token.CharLit, token.NumberLit:
		return syntax.NewNode(syntax.Literal, p.bump())
	case token.LParen:
		return p.parseParenthesized()
	case token.KwNew:
		return p.parseObjectCreation()
	case token.LBrace:
		return p.parseInitializer()
	case token.LBracket:
		// collection expression [a, b]
		return syntax.NewNode(syntax.Bracketed, p.parseRawGroup()...)
	}
	return nil
}

// parseParenthesized parses (e) and tuples (a, b).
func (p *Parser) parseParenthesized() *syntax.Node {
	items := []syntax.Element{p.bump()}
	for !p.atAny(token.RParen, token.Semicolon, token.RBrace, token.EOF) {
		e := p.parseExpression()
		if e == nil {
			items = append(items, syntax.NewNode(syntax.Skipped, p.bump()))
			continue
		}
		items = append(items, e)
		if c := p.eat(token.Comma); c != nil {
			items = append(items, c)
		}
	}
	items = append(items, p.eat(token.RParen))
	return syntax.NewNode(syntax.Parenthesized, items...)
}

// parseObjectCreation parses `new T(args) { init }`, `new()`, `new[] {..}`
// and anonymous `new { A = 1 }`.
func (p *Parser) parseObjectCreation() *syntax.Node {
	items := []syntax.Element{p.bump()}
	if t := p.parseType(); t != nil {
		items = append(items, t...)
	} else if p.at(token.LBracket) {
		items = append(items, p.parseRawGroup()...)
	}
	if p.at(token.LParen) {
		items = append(items, p.parseArgumentList())
	}
	if p.at(token.LBrace) {
		items = append(items, p.parseInitializer())
	}
	return syntax.NewNode(syntax.ObjectCreation, items...)
}

// parseInitializer parses { a, b = c, { nested } }.
func (p *Parser) parseInitializer() *syntax.Node {
	items := []syntax.Element{p.bump()}
	for !p.atAny(token.RBrace, token.Semicolon, token.EOF) {
		if c := p.eat(token.Comma); c != nil {
			items = append(items, c)
			continue
		}
		e := p.parseExpression()
		if e == nil {
			items = append(items, syntax.NewNode(syntax.Skipped, p.bump()))
			continue
		}
		items = append(items, e)
	}
	items = append(items, p.eat(token.RBrace))
	return syntax.NewNode(syntax.Initializer, items...)
}
