package syntax

import (
	"strings"

	"efguard/internal/token"
)

// Element is a green child: either *Node or *Token.
type Element interface {
	FullWidth() int
	writeTo(b *strings.Builder)
}

// Token is an immutable green token. It has no position; offsets come from
// the Tree that holds it.
type Token struct {
	Kind     token.Kind
	Text     string
	Leading  []token.Trivia
	Trailing []token.Trivia
}

// NewToken converts a lexer token into a green token.
func NewToken(t token.Token) *Token {
	return &Token{Kind: t.Kind, Text: t.Text, Leading: t.Leading, Trailing: t.Trailing}
}

// LeadingWidth returns the byte length of the leading trivia.
func (t *Token) LeadingWidth() int { return triviaWidth(t.Leading) }

// TrailingWidth returns the byte length of the trailing trivia.
func (t *Token) TrailingWidth() int { return triviaWidth(t.Trailing) }

func (t *Token) FullWidth() int {
	return t.LeadingWidth() + len(t.Text) + t.TrailingWidth()
}

// WithLeading returns a copy with the leading trivia replaced.
func (t *Token) WithLeading(tv []token.Trivia) *Token {
	cp := *t
	cp.Leading = tv
	return &cp
}

// WithTrailing returns a copy with the trailing trivia replaced.
func (t *Token) WithTrailing(tv []token.Trivia) *Token {
	cp := *t
	cp.Trailing = tv
	return &cp
}

func (t *Token) writeTo(b *strings.Builder) {
	for _, tv := range t.Leading {
		b.WriteString(tv.Text)
	}
	b.WriteString(t.Text)
	for _, tv := range t.Trailing {
		b.WriteString(tv.Text)
	}
}

func triviaWidth(tv []token.Trivia) int {
	n := 0
	for _, t := range tv {
		n += len(t.Text)
	}
	return n
}

// Node is an immutable green node.
type Node struct {
	Kind     Kind
	Children []Element
	width    int
}

// NewNode builds a node over children; nil children are dropped.
func NewNode(kind Kind, children ...Element) *Node {
	n := &Node{Kind: kind, Children: make([]Element, 0, len(children))}
	for _, c := range children {
		if c == nil || isNilElement(c) {
			continue
		}
		n.Children = append(n.Children, c)
		n.width += c.FullWidth()
	}
	return n
}

func isNilElement(e Element) bool {
	switch v := e.(type) {
	case *Node:
		return v == nil
	case *Token:
		return v == nil
	}
	return false
}

func (n *Node) FullWidth() int { return n.width }

// WithChild returns a copy of n with child slot i replaced.
func (n *Node) WithChild(i int, child Element) *Node {
	children := make([]Element, len(n.Children))
	copy(children, n.Children)
	children[i] = child
	return NewNode(n.Kind, children...)
}

// Text renders the node including all trivia.
func (n *Node) Text() string {
	var b strings.Builder
	b.Grow(n.width)
	n.writeTo(&b)
	return b.String()
}

func (n *Node) writeTo(b *strings.Builder) {
	for _, c := range n.Children {
		c.writeTo(b)
	}
}
