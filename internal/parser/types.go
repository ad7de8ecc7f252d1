package parser

import (
	"efguard/internal/syntax"
	"efguard/internal/token"
)

// parseType parses a (possibly qualified, generic, nullable or array) type
// and returns its name node followed by suffix tokens. nil means no type.
func (p *Parser) parseType() []syntax.Element {
	if !p.at(token.Ident) {
		return nil
	}
	var name syntax.Element = p.parseSimpleName(true)
	for p.at(token.Dot) && p.peekNIs(1, token.Ident) {
		dot := p.bump()
		name = syntax.NewNode(syntax.MemberAccess, name, dot, p.parseSimpleName(true))
	}
	items := []syntax.Element{name}
	for {
		switch {
		case p.at(token.Question):
			items = append(items, p.bump())
		case p.at(token.LBracket) && p.rankSpecifierAhead():
			items = append(items, p.parseRawGroup()...)
		default:
			return items
		}
	}
}

// rankSpecifierAhead reports `[]` or `[,,]`.
func (p *Parser) rankSpecifierAhead() bool {
	for i := p.pos + 1; i < len(p.toks); i++ {
		switch p.toks[i].Kind {
		case token.Comma:
			continue
		case token.RBracket:
			return true
		default:
			return false
		}
	}
	return false
}

// parseSimpleName parses `Name` or `Name<T, U>`. In type context the type
// argument list is taken whenever it parses; in expression context it must
// also be followed by a token that cannot continue a comparison.
func (p *Parser) parseSimpleName(typeContext bool) *syntax.Node {
	id := p.bump()
	if p.at(token.Lt) {
		start := p.mark()
		if args := p.tryTypeArgumentList(); args != nil && (typeContext || p.genericFollowOK()) {
			return syntax.NewNode(syntax.GenericName, id, args)
		}
		p.reset(start)
	}
	return syntax.NewNode(syntax.IdentifierName, id)
}

func (p *Parser) tryTypeArgumentList() *syntax.Node {
	items := []syntax.Element{p.bump()} // '<'
	for {
		if p.at(token.Comma) {
			// open generic: Dictionary<,>
			items = append(items, p.bump())
			continue
		}
		if p.at(token.Gt) {
			items = append(items, p.bump())
			return syntax.NewNode(syntax.TypeArgumentList, items...)
		}
		t := p.parseTypeOrTuple()
		if t == nil {
			return nil
		}
		items = append(items, t...)
		if p.at(token.Comma) {
			items = append(items, p.bump())
			continue
		}
		if !p.at(token.Gt) {
			return nil
		}
	}
}

// parseTypeOrTuple also accepts tuple types such as (int, string).
func (p *Parser) parseTypeOrTuple() []syntax.Element {
	if p.at(token.LParen) {
		end := p.matching(p.pos)
		if end < 0 {
			return nil
		}
		items := p.parseRawGroup()
		if p.at(token.Question) {
			items = append(items, p.bump())
		}
		return items
	}
	return p.parseType()
}

func (p *Parser) genericFollowOK() bool {
	switch p.peek().Kind {
	case token.LParen, token.RParen, token.RBracket, token.RBrace, token.Dot,
		token.Comma, token.Semicolon, token.Colon, token.Question, token.EOF, token.Gt:
		return true
	case token.Operator:
		t := p.peek().Text
		return t == "==" || t == "!="
	}
	return false
}

// skipType is the lookahead twin of parseType working on token indexes.
// It returns the index after the type or -1.
func (p *Parser) skipType(i int) int {
	if p.kindAt(i) != token.Ident {
		return -1
	}
	i++
	if p.kindAt(i) == token.Lt {
		if i = p.skipTypeArgs(i); i < 0 {
			return -1
		}
	}
	for p.kindAt(i) == token.Dot && p.kindAt(i+1) == token.Ident {
		i += 2
		if p.kindAt(i) == token.Lt {
			if i = p.skipTypeArgs(i); i < 0 {
				return -1
			}
		}
	}
	for {
		switch {
		case p.kindAt(i) == token.Question:
			i++
		case p.kindAt(i) == token.LBracket && p.kindAt(i+1) == token.RBracket:
			i += 2
		default:
			return i
		}
	}
}

// skipTypeArgs skips a `<...>` list starting at i.
func (p *Parser) skipTypeArgs(i int) int {
	depth := 0
	for ; i < len(p.toks); i++ {
		switch p.toks[i].Kind {
		case token.Lt:
			depth++
		case token.Gt:
			depth--
			if depth == 0 {
				return i + 1
			}
		case token.Ident, token.Comma, token.Dot, token.Question, token.LBracket, token.RBracket,
			token.LParen, token.RParen:
		default:
			return -1
		}
	}
	return -1
}
