package parser

import (
	"efguard/internal/syntax"
	"efguard/internal/token"
)

var modifiers = map[string]bool{
	"public": true, "private": true, "protected": true, "internal": true,
	"static": true, "abstract": true, "sealed": true, "partial": true,
	"override": true, "virtual": true, "async": true, "readonly": true,
	"extern": true, "unsafe": true, "new": true, "required": true, "file": true,
}

var typeKeywords = map[string]bool{
	"namespace": true, "class": true, "struct": true, "interface": true,
	"enum": true, "record": true, "delegate": true, "event": true,
}

// parseMember dispatches between using directives, attribute lists,
// declarations and statements. Top-level statements and members share one
// entry point.
func (p *Parser) parseMember() *syntax.Node {
	switch {
	case p.at(token.KwUsing) && p.usingDirectiveAhead():
		return p.parseUsingDirective()
	case p.at(token.LBracket) && p.attributeAhead():
		return p.parseBracketed()
	case p.declarationAhead():
		return p.parseDeclaration()
	default:
		return p.parseStatement()
	}
}

// usingDirectiveAhead tells `using X.Y;` / `using A = B;` / `using static X;`
// apart from `using (...)` and `using var x = ...;`.
func (p *Parser) usingDirectiveAhead() bool {
	next := p.peekN(1)
	if next.Kind != token.Ident {
		return false
	}
	if next.Text == "static" || next.Text == "global" {
		return true
	}
	// `using var x = ...` and `using Foo x = ...` declare locals
	for i := p.pos + 1; i < len(p.toks); i++ {
		switch p.toks[i].Kind {
		case token.Semicolon, token.EOF:
			return true
		case token.Ident:
			if p.kindAt(i+1) == token.Ident {
				return false
			}
		case token.Assign:
			// alias directive: `using A = B.C;`
			return i == p.pos+2
		case token.LParen, token.LBrace:
			return false
		}
	}
	return true
}

func (p *Parser) parseUsingDirective() *syntax.Node {
	items := []syntax.Element{p.bump()}
	for !p.atAny(token.Semicolon, token.EOF, token.RBrace) {
		items = append(items, p.bump())
	}
	items = append(items, p.eat(token.Semicolon))
	return syntax.NewNode(syntax.UsingDirective, items...)
}

// attributeAhead reports `[Attr]` followed by something other than an
// expression continuation.
func (p *Parser) attributeAhead() bool {
	end := p.matching(p.pos)
	if end < 0 {
		return false
	}
	switch p.kindAt(end + 1) {
	case token.Ident, token.LBracket, token.KwNew:
		return true
	}
	return false
}

// parseBracketed keeps a balanced [...] group as raw tokens.
func (p *Parser) parseBracketed() *syntax.Node {
	end := p.matching(p.pos)
	var items []syntax.Element
	for p.pos <= end && !p.at(token.EOF) {
		items = append(items, p.bump())
	}
	return syntax.NewNode(syntax.Bracketed, items...)
}

// declarationAhead recognizes namespace/type/member heads:
// modifiers, type keywords, accessors (`get {`), `Type Name(...) {` and
// constructor-like `Name(...) {` / `Name(...) :`.
func (p *Parser) declarationAhead() bool {
	i := p.pos
	sawModifier := false
	for p.kindAt(i) == token.Ident && modifiers[p.textAt(i)] &&
		(p.kindAt(i+1) == token.Ident || p.kindAt(i+1) == token.KwNew) {
		i++
		sawModifier = true
	}
	if p.kindAt(i) == token.KwNew && sawModifier {
		i++
	}
	if p.kindAt(i) == token.Ident && typeKeywords[p.textAt(i)] {
		return true
	}
	if sawModifier {
		return true
	}
	if p.kindAt(i) != token.Ident {
		return false
	}
	// `try {`, `get {`, `finally {`, property `X {`
	if p.kindAt(i+1) == token.LBrace {
		return true
	}
	// `Name(...) {` or `Name(...) : base(...)`
	if p.kindAt(i+1) == token.LParen {
		if end := p.matching(i + 1); end > 0 {
			switch p.kindAt(end + 1) {
			case token.LBrace, token.Colon:
				return true
			}
		}
		return false
	}
	// `Type Name(...) {` / `Type Name(...) =>`
	j := p.skipType(i)
	if j < 0 || p.kindAt(j) != token.Ident {
		return false
	}
	if p.kindAt(j+1) == token.LBrace {
		// property without modifiers: `int X { get; }`
		return true
	}
	if p.kindAt(j+1) == token.Lt || p.kindAt(j+1) == token.LParen {
		k := j + 1
		if p.kindAt(k) == token.Lt {
			if k = p.skipTypeArgs(k); k < 0 {
				return false
			}
		}
		if p.kindAt(k) != token.LParen {
			return false
		}
		end := p.matching(k)
		if end < 0 {
			return false
		}
		switch p.kindAt(end + 1) {
		case token.LBrace, token.FatArrow:
			return true
		case token.Ident:
			return p.textAt(end+1) == "where"
		}
	}
	return false
}

// parseDeclaration takes the head up to a depth-0 '{', ';' or '=>', then the
// body. A depth-0 '=' in the head starts an initializer expression.
func (p *Parser) parseDeclaration() *syntax.Node {
	var items []syntax.Element
	for !p.atAny(token.LBrace, token.Semicolon, token.FatArrow, token.RBrace, token.EOF) {
		switch {
		case p.at(token.Assign):
			items = append(items, p.bump())
			if e := p.parseExpression(); e != nil {
				items = append(items, e)
			}
		case p.at(token.LParen) || p.at(token.LBracket):
			items = append(items, p.parseRawGroup()...)
		default:
			items = append(items, p.bump())
		}
	}
	switch {
	case p.at(token.LBrace):
		items = append(items, p.parseBlock())
		if p.at(token.Assign) {
			// property initializer after accessors
			items = append(items, p.bump())
			if e := p.parseExpression(); e != nil {
				items = append(items, e)
			}
			items = append(items, p.eat(token.Semicolon))
		}
	case p.at(token.FatArrow):
		items = append(items, p.bump())
		if e := p.parseExpression(); e != nil {
			items = append(items, e)
		}
		items = append(items, p.eat(token.Semicolon))
	case p.at(token.Semicolon):
		items = append(items, p.bump())
	}
	return syntax.NewNode(syntax.Declaration, items...)
}

// parseRawGroup consumes a balanced group as tokens. An unbalanced group
// consumes only its opener.
func (p *Parser) parseRawGroup() []syntax.Element {
	end := p.matching(p.pos)
	if end < 0 {
		return []syntax.Element{p.bump()}
	}
	var items []syntax.Element
	for p.pos <= end {
		items = append(items, p.bump())
	}
	return items
}
