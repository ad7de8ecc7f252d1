// Package rewrite implements the structural edits behind the fixes. Every
// function returns a new tree and leaves its input untouched.
package rewrite

import (
	"efguard/internal/syntax"
	"efguard/internal/token"
)

// Result tells whether an edit changed the tree.
type Result uint8

const (
	Unchanged Result = iota
	Edited
)

func (r Result) String() string {
	if r == Edited {
		return "edited"
	}
	return "unchanged"
}

// EnclosingStatement returns the smallest statement (or member
// declaration, for expression-bodied members) containing n.
func EnclosingStatement(tree *syntax.Tree, n syntax.NodeID) syntax.NodeID {
	for cur := n; cur != syntax.NoNode; cur = tree.Parent(cur) {
		k := tree.Kind(cur)
		if k.IsStatement() || k == syntax.Declaration {
			return cur
		}
	}
	return syntax.NoNode
}

func endsWithEOL(tv []token.Trivia) bool {
	return len(tv) > 0 && tv[len(tv)-1].Kind == token.TriviaEndOfLine
}

func lastEOL(tv []token.Trivia) int {
	for i := len(tv) - 1; i >= 0; i-- {
		if tv[i].Kind == token.TriviaEndOfLine {
			return i
		}
	}
	return -1
}

func concat(parts ...[]token.Trivia) []token.Trivia {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]token.Trivia, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
