package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"efguard/internal/parser"
	"efguard/internal/syntax"
)

func parse(t *testing.T, src string, symbols ...string) *syntax.Tree {
	t.Helper()
	tree := parser.ParseText("test.cs", src, symbols...)
	require.Equal(t, src, tree.Text(), "tree must round-trip")
	return tree
}

func nodesOfKind(tree *syntax.Tree, kind syntax.Kind) []syntax.NodeID {
	var out []syntax.NodeID
	tree.Walk(tree.Root(), func(n syntax.NodeID) bool {
		if tree.Kind(n) == kind {
			out = append(out, n)
		}
		return true
	})
	return out
}

func texts(tree *syntax.Tree, ids []syntax.NodeID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, tree.NodeText(id))
	}
	return out
}
