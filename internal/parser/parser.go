package parser

import (
	"slices"

	"efguard/internal/diag"
	"efguard/internal/lexer"
	"efguard/internal/source"
	"efguard/internal/syntax"
	"efguard/internal/token"
)

type Options struct {
	// Symbols are the preprocessor symbols the file is parsed under.
	Symbols  []string
	Reporter diag.Reporter
}

// Parser holds the state for one file. The whole token stream is lexed up
// front so speculative parses can rewind by resetting pos.
type Parser struct {
	toks []token.Token
	pos  int
}

// ParseFile lexes and parses f. Parsing never fails: anything that does not
// fit the grammar lands in Skipped nodes and the tree still round-trips.
func ParseFile(f *source.File, opts Options) *syntax.Tree {
	lx := lexer.New(f, lexer.Options{Symbols: opts.Symbols, Reporter: opts.Reporter})
	p := Parser{toks: lx.All()}
	return syntax.NewTree(p.parseCompilationUnit(), f.ID, f.Path)
}

// ParseText parses an in-memory document registered as a virtual file.
func ParseText(path, text string, symbols ...string) *syntax.Tree {
	fs := source.NewFileSet()
	id := fs.AddVirtual(path, []byte(text))
	return ParseFile(fs.Get(id), Options{Symbols: symbols})
}

func (p *Parser) peek() token.Token { return p.peekN(0) }

func (p *Parser) peekN(n int) token.Token {
	i := p.pos + n
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atAny(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// atWord reports an identifier with the given text.
func (p *Parser) atWord(text string) bool {
	t := p.peek()
	return t.Kind == token.Ident && t.Text == text
}

// bump consumes the current token. EOF is never consumed.
func (p *Parser) bump() *syntax.Token {
	t := p.peek()
	if t.Kind != token.EOF {
		p.pos++
	}
	return syntax.NewToken(t)
}

// eat consumes the current token if it has kind k.
func (p *Parser) eat(k token.Kind) *syntax.Token {
	if p.at(k) {
		return p.bump()
	}
	return nil
}

func (p *Parser) mark() int { return p.pos }

func (p *Parser) reset(m int) { p.pos = m }

func (p *Parser) parseCompilationUnit() *syntax.Node {
	var items []syntax.Element
	for !p.at(token.EOF) {
		items = append(items, p.parseMemberOrSkip(false))
	}
	items = append(items, p.bump())
	return syntax.NewNode(syntax.CompilationUnit, items...)
}

// parseMemberOrSkip parses one member or statement and guarantees progress.
// inBlock stops at '}' so the caller can close the block.
func (p *Parser) parseMemberOrSkip(inBlock bool) syntax.Element {
	start := p.mark()
	n := p.parseMember()
	if n != nil && p.pos > start {
		return n
	}
	p.reset(start)
	return syntax.NewNode(syntax.Skipped, p.bump())
}
