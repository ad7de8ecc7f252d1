package parser

import "efguard/internal/token"

// matching returns the index of the token closing the group opened at i
// ('(' / '[' / '{'), or -1.
func (p *Parser) matching(i int) int {
	depth := 0
	for j := i; j < len(p.toks); j++ {
		switch p.toks[j].Kind {
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			depth--
			if depth == 0 {
				return j
			}
		case token.EOF:
			return -1
		}
	}
	return -1
}

// kindAt returns the kind of the token at absolute index i.
func (p *Parser) kindAt(i int) token.Kind {
	if i < 0 || i >= len(p.toks) {
		return token.EOF
	}
	return p.toks[i].Kind
}

func (p *Parser) textAt(i int) string {
	if i < 0 || i >= len(p.toks) {
		return ""
	}
	return p.toks[i].Text
}

func isOpen(k token.Kind) bool {
	return k == token.LParen || k == token.LBracket || k == token.LBrace
}

func isClose(k token.Kind) bool {
	return k == token.RParen || k == token.RBracket || k == token.RBrace
}
