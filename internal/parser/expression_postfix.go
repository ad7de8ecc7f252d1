package parser

import (
	"efguard/internal/syntax"
	"efguard/internal/token"
)

func (p *Parser) parsePostfix() *syntax.Node {
	prim := p.parsePrimary()
	if prim == nil {
		return nil
	}
	return p.parsePostfixOps(prim)
}

// parsePostfixOps applies member access, invocation, element access,
// conditional access and postfix operators to expr.
func (p *Parser) parsePostfixOps(expr *syntax.Node) *syntax.Node {
	for {
		switch t := p.peek(); {
		case t.Kind == token.Dot && p.peekNIs(1, token.Ident):
			dot := p.bump()
			expr = syntax.NewNode(syntax.MemberAccess, expr, dot, p.parseSimpleName(false))
		case t.Kind == token.LParen:
			expr = syntax.NewNode(syntax.Invocation, expr, p.parseArgumentList())
		case t.Kind == token.LBracket:
			expr = syntax.NewNode(syntax.ElementAccess, expr, p.parseBracketedArgumentList())
		case t.Kind == token.Question && p.bindingAhead():
			q := p.bump()
			// the conditional access owns the rest of the chain
			return syntax.NewNode(syntax.ConditionalAccess, expr, q, p.parseWhenNotNull())
		case t.Kind == token.Operator && (t.Text == "++" || t.Text == "--"):
			expr = syntax.NewNode(syntax.Unary, expr, p.bump())
		case t.Kind == token.Bang && p.nullForgivingAhead():
			expr = syntax.NewNode(syntax.Unary, expr, p.bump())
		default:
			return expr
		}
	}
}

// bindingAhead reports `?.name` or `?[`.
func (p *Parser) bindingAhead() bool {
	next := p.peekN(1).Kind
	return (next == token.Dot && p.peekNIs(2, token.Ident)) || next == token.LBracket
}

func (p *Parser) nullForgivingAhead() bool {
	switch p.peekN(1).Kind {
	case token.Dot, token.RParen, token.Semicolon, token.Comma, token.LBracket, token.RBracket:
		return true
	}
	return false
}

// parseWhenNotNull parses the part after '?': a member binding `.Name` or
// an element binding `[i]`, followed by any further postfix operations.
func (p *Parser) parseWhenNotNull() *syntax.Node {
	var binding *syntax.Node
	if p.at(token.Dot) {
		dot := p.bump()
		binding = syntax.NewNode(syntax.MemberBinding, dot, p.parseSimpleName(false))
	} else {
		binding = syntax.NewNode(syntax.ElementAccess, p.parseBracketedArgumentList())
	}
	return p.parsePostfixOps(binding)
}

// parseArgumentList parses '(' [arg {, arg}] ')'. It stops without
// consuming at ';' or '}' when the ')' is missing.
func (p *Parser) parseArgumentList() *syntax.Node {
	items := []syntax.Element{p.bump()}
	items = append(items, p.parseArguments(token.RParen)...)
	items = append(items, p.eat(token.RParen))
	return syntax.NewNode(syntax.ArgumentList, items...)
}

func (p *Parser) parseBracketedArgumentList() *syntax.Node {
	items := []syntax.Element{p.bump()}
	items = append(items, p.parseArguments(token.RBracket)...)
	items = append(items, p.eat(token.RBracket))
	return syntax.NewNode(syntax.BracketedArgumentList, items...)
}

func (p *Parser) parseArguments(closer token.Kind) []syntax.Element {
	var items []syntax.Element
	for !p.atAny(closer, token.Semicolon, token.RBrace, token.EOF) {
		if c := p.eat(token.Comma); c != nil {
			items = append(items, c)
			continue
		}
		arg := p.parseArgument()
		if arg == nil {
			items = append(items, syntax.NewNode(syntax.Skipped, p.bump()))
			continue
		}
		items = append(items, arg)
	}
	return items
}

// parseArgument parses `[name:] [ref|out|in] expr`, including `out var x`.
func (p *Parser) parseArgument() *syntax.Node {
	var items []syntax.Element
	if p.at(token.Ident) && p.peekNIs(1, token.Colon) {
		items = append(items, p.bump(), p.bump())
	}
	if p.at(token.Ident) {
		switch p.peek().Text {
		case "ref", "out", "in":
			items = append(items, p.bump())
			if p.at(token.Ident) && p.peekNIs(1, token.Ident) {
				// declaration expression: out var x
				items = append(items, p.bump(), p.bump())
				return syntax.NewNode(syntax.Argument, items...)
			}
		}
	}
	e := p.parseExpression()
	if e == nil {
		if len(items) == 0 {
			return nil
		}
		return syntax.NewNode(syntax.Argument, items...)
	}
	items = append(items, e)
	return syntax.NewNode(syntax.Argument, items...)
}
