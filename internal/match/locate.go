package match

import (
	"strings"

	"efguard/internal/syntax"
)

// InvocationAt returns the innermost invocation containing the token at
// off, or NoNode.
func InvocationAt(tree *syntax.Tree, off uint32) syntax.NodeID {
	tk := tree.FindToken(off)
	if tk == syntax.NoToken {
		return syntax.NoNode
	}
	return tree.FirstAncestorOrSelf(tree.TokenParent(tk), syntax.Invocation)
}

// Anchor is a member access picked as insertion point.
type Anchor struct {
	Access syntax.NodeID
	// Dot is the '.' operator token of the access.
	Dot  syntax.TokenID
	Name syntax.TokenID
}

// NearestPreceding returns the member access (or binding) whose name starts
// with prefix and that ends closest before the offset `before`.
func NearestPreceding(tree *syntax.Tree, before uint32, prefix string) (Anchor, bool) {
	var best Anchor
	var bestEnd uint32
	found := false
	tree.Walk(tree.Root(), func(n syntax.NodeID) bool {
		k := tree.Kind(n)
		if k != syntax.MemberAccess && k != syntax.MemberBinding {
			return true
		}
		name := memberName(tree, n)
		if name == syntax.NoToken || !strings.HasPrefix(tree.TokenText(name), prefix) {
			return true
		}
		end := tree.Span(n).End
		if end > before || (found && end <= bestEnd) {
			return true
		}
		dot := tree.PrevToken(name)
		best = Anchor{Access: n, Dot: dot, Name: name}
		bestEnd = end
		found = true
		return true
	})
	return best, found
}
