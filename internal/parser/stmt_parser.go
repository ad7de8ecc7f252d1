package parser

import (
	"efguard/internal/syntax"
	"efguard/internal/token"
)

func (p *Parser) parseStatement() *syntax.Node {
	switch p.peek().Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.Semicolon:
		return syntax.NewNode(syntax.EmptyStatement, p.bump())
	case token.KwReturn:
		return p.parseReturn()
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile, token.KwLock:
		return p.parseHeadedStatement(true)
	case token.KwFor, token.KwForeach:
		return p.parseHeadedStatement(false)
	case token.KwUsing:
		return p.parseUsingStatement()
	case token.KwDo:
		return p.parseDo()
	case token.Ident:
		if p.atWord("throw") {
			return p.parseReturn()
		}
	}
	if n := p.tryLocalDeclaration(nil); n != nil {
		return n
	}
	return p.parseExpressionStatement()
}

// parseBlock parses '{' members '}'.
func (p *Parser) parseBlock() *syntax.Node {
	items := []syntax.Element{p.bump()}
	for !p.atAny(token.RBrace, token.EOF) {
		items = append(items, p.parseMemberOrSkip(true))
	}
	items = append(items, p.eat(token.RBrace))
	return syntax.NewNode(syntax.Block, items...)
}

// parseReturn covers `return [expr];` and `throw [expr];`.
func (p *Parser) parseReturn() *syntax.Node {
	items := []syntax.Element{p.bump()}
	if e := p.parseExpression(); e != nil {
		items = append(items, e)
	}
	items = append(items, p.finishStatement()...)
	return syntax.NewNode(syntax.ReturnStatement, items...)
}

func (p *Parser) parseIf() *syntax.Node {
	items := []syntax.Element{p.bump()}
	items = append(items, p.parseCondition()...)
	items = append(items, p.parseEmbedded())
	if p.at(token.KwElse) {
		items = append(items, syntax.NewNode(syntax.ElseClause, p.bump(), p.parseEmbedded()))
	}
	return syntax.NewNode(syntax.ControlStatement, items...)
}

// parseHeadedStatement handles `kw (...) body`. With expr set the header
// is parsed as an expression; otherwise (for/foreach) it stays raw tokens.
func (p *Parser) parseHeadedStatement(expr bool) *syntax.Node {
	items := []syntax.Element{p.bump()}
	if expr {
		items = append(items, p.parseCondition()...)
	} else if p.at(token.LParen) {
		items = append(items, p.parseRawGroup()...)
	}
	items = append(items, p.parseEmbedded())
	return syntax.NewNode(syntax.ControlStatement, items...)
}

func (p *Parser) parseUsingStatement() *syntax.Node {
	if !p.peekNIs(1, token.LParen) {
		// `using var x = ...;`
		kw := p.bump()
		if n := p.tryLocalDeclaration(kw); n != nil {
			return n
		}
		return p.finishGeneric([]syntax.Element{kw})
	}
	items := []syntax.Element{p.bump(), p.bump()}
	start := p.mark()
	if d := p.parseLocalDeclarationParts(); d != nil && p.at(token.RParen) {
		items = append(items, syntax.NewNode(syntax.LocalDeclaration, d...))
	} else {
		p.reset(start)
		if e := p.parseExpression(); e != nil {
			items = append(items, e)
		}
	}
	items = append(items, p.eat(token.RParen))
	items = append(items, p.parseEmbedded())
	return syntax.NewNode(syntax.ControlStatement, items...)
}

func (p *Parser) parseDo() *syntax.Node {
	items := []syntax.Element{p.bump(), p.parseEmbedded()}
	if p.at(token.KwWhile) {
		items = append(items, p.bump())
		items = append(items, p.parseCondition()...)
	}
	items = append(items, p.eat(token.Semicolon))
	return syntax.NewNode(syntax.ControlStatement, items...)
}

// parseCondition parses '(' expr ')'.
func (p *Parser) parseCondition() []syntax.Element {
	if !p.at(token.LParen) {
		return nil
	}
	items := []syntax.Element{p.bump()}
	if e := p.parseExpression(); e != nil {
		items = append(items, e)
	}
	for !p.atAny(token.RParen, token.LBrace, token.Semicolon, token.EOF) {
		items = append(items, syntax.NewNode(syntax.Skipped, p.bump()))
	}
	items = append(items, p.eat(token.RParen))
	return items
}

// parseEmbedded parses the body of a control statement.
func (p *Parser) parseEmbedded() syntax.Element {
	if p.atAny(token.RBrace, token.EOF) {
		return nil
	}
	start := p.mark()
	if n := p.parseStatement(); n != nil && p.pos > start {
		return n
	}
	p.reset(start)
	return syntax.NewNode(syntax.Skipped, p.bump())
}

func (p *Parser) parseExpressionStatement() *syntax.Node {
	e := p.parseExpression()
	if e == nil {
		return nil
	}
	if p.at(token.Semicolon) {
		return syntax.NewNode(syntax.ExpressionStatement, e, p.bump())
	}
	return p.finishGeneric([]syntax.Element{e})
}

// finishStatement expects ';' and sweeps anything before it into Skipped.
func (p *Parser) finishStatement() []syntax.Element {
	var items []syntax.Element
	if !p.at(token.Semicolon) && !p.atAny(token.RBrace, token.EOF) {
		items = append(items, p.skipUntilSemicolon())
	}
	return append(items, p.eat(token.Semicolon))
}

// finishGeneric turns a partially parsed statement into a GenericStatement
// running to the next ';' at depth 0.
func (p *Parser) finishGeneric(items []syntax.Element) *syntax.Node {
	for !p.atAny(token.Semicolon, token.RBrace, token.EOF) {
		if isOpen(p.peek().Kind) {
			items = append(items, p.parseRawGroup()...)
			continue
		}
		items = append(items, p.bump())
	}
	items = append(items, p.eat(token.Semicolon))
	return syntax.NewNode(syntax.GenericStatement, items...)
}

func (p *Parser) skipUntilSemicolon() *syntax.Node {
	var items []syntax.Element
	for !p.atAny(token.Semicolon, token.RBrace, token.EOF) {
		if isOpen(p.peek().Kind) {
			items = append(items, p.parseRawGroup()...)
			continue
		}
		items = append(items, p.bump())
	}
	return syntax.NewNode(syntax.Skipped, items...)
}

// tryLocalDeclaration parses `[prefix] Type name [= init] {, name [= init]};`
// or rewinds and returns nil.
func (p *Parser) tryLocalDeclaration(prefix *syntax.Token) *syntax.Node {
	start := p.mark()
	parts := p.parseLocalDeclarationParts()
	if parts == nil {
		p.reset(start)
		return nil
	}
	items := make([]syntax.Element, 0, len(parts)+2)
	if prefix != nil {
		items = append(items, prefix)
	}
	items = append(items, parts...)
	items = append(items, p.finishStatement()...)
	return syntax.NewNode(syntax.LocalDeclaration, items...)
}

func (p *Parser) parseLocalDeclarationParts() []syntax.Element {
	var items []syntax.Element
	for p.at(token.Ident) && (p.peek().Text == "const" || p.peek().Text == "ref" || p.peek().Text == "readonly") {
		items = append(items, p.bump())
	}
	typ := p.parseType()
	if typ == nil {
		return nil
	}
	if !p.at(token.Ident) {
		return nil
	}
	next := p.peekN(1).Kind
	if next != token.Assign && next != token.Semicolon && next != token.Comma {
		return nil
	}
	items = append(items, typ...)
	for {
		items = append(items, p.bump()) // name
		if p.at(token.Assign) {
			items = append(items, p.bump())
			if e := p.parseExpression(); e != nil {
				items = append(items, e)
			}
		}
		if !p.at(token.Comma) || !p.peekNIs(1, token.Ident) {
			break
		}
		items = append(items, p.bump())
	}
	return items
}

func (p *Parser) peekNIs(n int, k token.Kind) bool {
	return p.peekN(n).Kind == k
}
