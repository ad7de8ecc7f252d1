package syntax

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"fortio.org/safecast"

	"efguard/internal/source"
)

type (
	// NodeID indexes a node in a Tree's arena. Root is 0.
	NodeID int32
	// TokenID indexes a token in document order.
	TokenID int32
)

const (
	NoNode  NodeID  = -1
	NoToken TokenID = -1
)

// Ref is a child slot: exactly one of Node/Token is set.
type Ref struct {
	Node  NodeID
	Token TokenID
}

// IsToken reports whether the slot holds a token.
func (r Ref) IsToken() bool { return r.Token != NoToken }

type nodeInfo struct {
	green    *Node
	parent   NodeID
	slot     int
	offset   uint32 // full start, leading trivia included
	children []Ref
	firstTok TokenID
	endTok   TokenID // exclusive
}

type tokenInfo struct {
	green  *Token
	parent NodeID
	slot   int
	offset uint32
}

// Tree is the positioned view of a green root. It is immutable; edits
// return a new Tree sharing unchanged green subtrees.
type Tree struct {
	root *Node
	file source.FileID
	path string

	once   sync.Once
	nodes  []nodeInfo
	tokens []tokenInfo
	text   string
	lines  []uint32
}

// NewTree wraps a green root. file and path are used for spans and reporting.
func NewTree(root *Node, file source.FileID, path string) *Tree {
	return &Tree{root: root, file: file, path: path}
}

func (t *Tree) GreenRoot() *Node { return t.root }

func (t *Tree) File() source.FileID { return t.file }

func (t *Tree) Path() string { return t.path }

// Root returns the id of the root node.
func (t *Tree) Root() NodeID { return 0 }

func (t *Tree) withRoot(r *Node) *Tree { return NewTree(r, t.file, t.path) }

func (t *Tree) index() {
	t.once.Do(func() {
		var b strings.Builder
		b.Grow(t.root.FullWidth())
		t.root.writeTo(&b)
		t.text = b.String()
		t.lines = source.BuildLineIndex([]byte(t.text))
		t.indexNode(t.root, NoNode, 0, 0)
	})
}

func (t *Tree) indexNode(n *Node, parent NodeID, slot int, off uint32) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, nodeInfo{
		green:    n,
		parent:   parent,
		slot:     slot,
		offset:   off,
		firstTok: TokenID(len(t.tokens)),
	})
	children := make([]Ref, 0, len(n.Children))
	for i, c := range n.Children {
		switch v := c.(type) {
		case *Node:
			cid := t.indexNode(v, id, i, off)
			children = append(children, Ref{Node: cid, Token: NoToken})
		case *Token:
			tid := TokenID(len(t.tokens))
			t.tokens = append(t.tokens, tokenInfo{green: v, parent: id, slot: i, offset: off})
			children = append(children, Ref{Node: NoNode, Token: tid})
		}
		off += u32(c.FullWidth())
	}
	t.nodes[id].children = children
	t.nodes[id].endTok = TokenID(len(t.tokens))
	return id
}

func u32(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("offset overflow: %w", err))
	}
	return v
}

// Text returns the full source text of the tree.
func (t *Tree) Text() string {
	t.index()
	return t.text
}

// WriteTo writes the full text to w.
func (t *Tree) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, t.Text())
	return int64(n), err
}

// Position converts a byte offset of this tree's text into a 1-based line/column.
func (t *Tree) Position(off uint32) source.LineCol {
	t.index()
	return source.ToLineCol(t.lines, off)
}

// EOL returns the line terminator used by the first line break of the text,
// or "\n" for single-line text.
func (t *Tree) EOL() string {
	text := t.Text()
	i := strings.IndexAny(text, "\r\n")
	switch {
	case i < 0:
		return "\n"
	case text[i] == '\r' && i+1 < len(text) && text[i+1] == '\n':
		return "\r\n"
	case text[i] == '\r':
		return "\r"
	default:
		return "\n"
	}
}

// NodeCount returns the number of nodes in the tree.
func (t *Tree) NodeCount() int {
	t.index()
	return len(t.nodes)
}

// TokenCount returns the number of tokens, EOF included.
func (t *Tree) TokenCount() int {
	t.index()
	return len(t.tokens)
}

func (t *Tree) span(start, end uint32) source.Span {
	return source.Span{File: t.file, Start: start, End: end}
}
