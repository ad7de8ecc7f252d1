package syntax

import (
	"sort"

	"efguard/internal/source"
	"efguard/internal/token"
)

func (t *Tree) node(id NodeID) *nodeInfo {
	t.index()
	return &t.nodes[id]
}

func (t *Tree) tok(id TokenID) *tokenInfo {
	t.index()
	return &t.tokens[id]
}

// Kind returns the kind of node id.
func (t *Tree) Kind(id NodeID) Kind { return t.node(id).green.Kind }

// Green returns the green node behind id.
func (t *Tree) Green(id NodeID) *Node { return t.node(id).green }

// Token returns the green token behind id.
func (t *Tree) Token(id TokenID) *Token { return t.tok(id).green }

// TokenKind returns the lexical kind of token id.
func (t *Tree) TokenKind(id TokenID) token.Kind { return t.tok(id).green.Kind }

// TokenText returns the token text without trivia.
func (t *Tree) TokenText(id TokenID) string { return t.tok(id).green.Text }

// Parent returns the parent node, NoNode for the root.
func (t *Tree) Parent(id NodeID) NodeID { return t.node(id).parent }

// TokenParent returns the node that owns token id.
func (t *Tree) TokenParent(id TokenID) NodeID { return t.tok(id).parent }

// Children returns the child slots of id in order.
func (t *Tree) Children(id NodeID) []Ref { return t.node(id).children }

// ChildNodes returns only the node children of id.
func (t *Tree) ChildNodes(id NodeID) []NodeID {
	var out []NodeID
	for _, r := range t.node(id).children {
		if !r.IsToken() {
			out = append(out, r.Node)
		}
	}
	return out
}

// ChildToken returns the first direct child token of the given kind.
func (t *Tree) ChildToken(id NodeID, kind token.Kind) TokenID {
	for _, r := range t.node(id).children {
		if r.IsToken() && t.TokenKind(r.Token) == kind {
			return r.Token
		}
	}
	return NoToken
}

// ChildNode returns the first direct child node of the given kind.
func (t *Tree) ChildNode(id NodeID, kind Kind) NodeID {
	for _, r := range t.node(id).children {
		if !r.IsToken() && t.Kind(r.Node) == kind {
			return r.Node
		}
	}
	return NoNode
}

// Ancestors returns the parents of id from the nearest up to the root.
func (t *Tree) Ancestors(id NodeID) []NodeID {
	var out []NodeID
	for p := t.Parent(id); p != NoNode; p = t.Parent(p) {
		out = append(out, p)
	}
	return out
}

// AncestorsAndSelf is Ancestors with id prepended.
func (t *Tree) AncestorsAndSelf(id NodeID) []NodeID {
	return append([]NodeID{id}, t.Ancestors(id)...)
}

// FirstAncestorOrSelf returns the nearest node of kind starting at id.
func (t *Tree) FirstAncestorOrSelf(id NodeID, kind Kind) NodeID {
	for n := id; n != NoNode; n = t.Parent(n) {
		if t.Kind(n) == kind {
			return n
		}
	}
	return NoNode
}

// Descendants returns all nodes below id in document (pre-)order.
// Node ids are assigned in pre-order, so this is a contiguous id range.
func (t *Tree) Descendants(id NodeID) []NodeID {
	t.index()
	end := t.subtreeEnd(id)
	out := make([]NodeID, 0, int(end-id-1))
	for n := id + 1; n < end; n++ {
		out = append(out, n)
	}
	return out
}

// Walk visits id and its descendants in pre-order. Returning false from fn
// skips the node's children.
func (t *Tree) Walk(id NodeID, fn func(NodeID) bool) {
	if !fn(id) {
		return
	}
	for _, c := range t.node(id).children {
		if !c.IsToken() {
			t.Walk(c.Node, fn)
		}
	}
}

func (t *Tree) subtreeEnd(id NodeID) NodeID {
	for n := id; ; {
		ch := t.node(n).children
		last := NoNode
		for i := len(ch) - 1; i >= 0; i-- {
			if !ch[i].IsToken() {
				last = ch[i].Node
				break
			}
		}
		if last == NoNode {
			return n + 1
		}
		n = last
	}
}

// Tokens returns the token ids covered by id in document order.
func (t *Tree) Tokens(id NodeID) []TokenID {
	info := t.node(id)
	out := make([]TokenID, 0, int(info.endTok-info.firstTok))
	for tk := info.firstTok; tk < info.endTok; tk++ {
		out = append(out, tk)
	}
	return out
}

// FirstToken returns the first token under id, or NoToken for an empty node.
func (t *Tree) FirstToken(id NodeID) TokenID {
	info := t.node(id)
	if info.firstTok == info.endTok {
		return NoToken
	}
	return info.firstTok
}

// LastToken returns the last token under id, or NoToken.
func (t *Tree) LastToken(id NodeID) TokenID {
	info := t.node(id)
	if info.firstTok == info.endTok {
		return NoToken
	}
	return info.endTok - 1
}

// PrevToken returns the token before id in document order.
func (t *Tree) PrevToken(id TokenID) TokenID {
	if id <= 0 {
		return NoToken
	}
	return id - 1
}

// NextToken returns the token after id, or NoToken after EOF.
func (t *Tree) NextToken(id TokenID) TokenID {
	t.index()
	if int(id)+1 >= len(t.tokens) {
		return NoToken
	}
	return id + 1
}

// TokenSpan is the span of the token text without trivia.
func (t *Tree) TokenSpan(id TokenID) source.Span {
	info := t.tok(id)
	start := info.offset + u32(info.green.LeadingWidth())
	return t.span(start, start+u32(len(info.green.Text)))
}

// TokenFullSpan includes leading and trailing trivia.
func (t *Tree) TokenFullSpan(id TokenID) source.Span {
	info := t.tok(id)
	return t.span(info.offset, info.offset+u32(info.green.FullWidth()))
}

// Span covers the node text from its first to its last token, trivia excluded.
// An empty node yields an empty span at its offset.
func (t *Tree) Span(id NodeID) source.Span {
	first, last := t.FirstToken(id), t.LastToken(id)
	if first == NoToken {
		off := t.node(id).offset
		return t.span(off, off)
	}
	return t.span(t.TokenSpan(first).Start, t.TokenSpan(last).End)
}

// FullSpan includes the outer trivia of the node.
func (t *Tree) FullSpan(id NodeID) source.Span {
	info := t.node(id)
	return t.span(info.offset, info.offset+u32(info.green.FullWidth()))
}

// NodeText returns the node text without its outer trivia.
func (t *Tree) NodeText(id NodeID) string {
	sp := t.Span(id)
	return t.Text()[sp.Start:sp.End]
}

// FindToken returns the token whose full span contains off. Offsets at or
// past the end of the text resolve to the EOF token.
func (t *Tree) FindToken(off uint32) TokenID {
	t.index()
	n := len(t.tokens)
	i := sort.Search(n, func(i int) bool {
		info := &t.tokens[i]
		return info.offset+u32(info.green.FullWidth()) > off
	})
	if i >= n {
		return TokenID(n - 1)
	}
	return TokenID(i)
}

// TriviaRef is a trivia item with its absolute span.
type TriviaRef struct {
	Trivia  token.Trivia
	Span    source.Span
	Token   TokenID
	Leading bool
	Index   int
}

// TokenTrivia returns the leading then trailing trivia of a token with spans.
func (t *Tree) TokenTrivia(id TokenID) []TriviaRef {
	info := t.tok(id)
	g := info.green
	out := make([]TriviaRef, 0, len(g.Leading)+len(g.Trailing))
	off := info.offset
	for i, tv := range g.Leading {
		end := off + u32(len(tv.Text))
		out = append(out, TriviaRef{Trivia: tv, Span: t.span(off, end), Token: id, Leading: true, Index: i})
		off = end
	}
	off += u32(len(g.Text))
	for i, tv := range g.Trailing {
		end := off + u32(len(tv.Text))
		out = append(out, TriviaRef{Trivia: tv, Span: t.span(off, end), Token: id, Index: i})
		off = end
	}
	return out
}

// DescendantTrivia returns every trivia item under id in document order.
func (t *Tree) DescendantTrivia(id NodeID) []TriviaRef {
	var out []TriviaRef
	for _, tk := range t.Tokens(id) {
		out = append(out, t.TokenTrivia(tk)...)
	}
	return out
}
