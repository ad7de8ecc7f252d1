// Package directive resolves which conditional-compilation region encloses
// a point of a syntax tree and decides whether that region is
// development-only.
package directive

import (
	"efguard/internal/syntax"
	"efguard/internal/token"
)

// Guard is the conditional region governing a point.
type Guard struct {
	// Opening is the #if that opened the region.
	Opening syntax.TriviaRef
	// Branch is the #if, #elif or #else whose branch holds the point.
	Branch syntax.TriviaRef
}

// Kind is the trivia kind of the governing branch directive.
func (g Guard) Kind() token.TriviaKind { return g.Branch.Trivia.Kind }

// Condition returns the branch condition; empty for #else.
func (g Guard) Condition() string { return g.Branch.Trivia.Condition() }

// ClosestGuard returns the innermost conditional region that is still open
// at off. Directives are visited in document order up to off with a
// nesting stack, so a region closed by #endif before off is never returned
// and an enclosing outer region is returned instead.
func ClosestGuard(tree *syntax.Tree, off uint32) (Guard, bool) {
	var stack []Guard
	for _, tr := range tree.DescendantTrivia(tree.Root()) {
		if tr.Span.End > off {
			break
		}
		switch tr.Trivia.Kind {
		case token.TriviaIfDirective:
			stack = append(stack, Guard{Opening: tr, Branch: tr})
		case token.TriviaElifDirective, token.TriviaElseDirective:
			if len(stack) > 0 {
				stack[len(stack)-1].Branch = tr
			}
		case token.TriviaEndIfDirective:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	if len(stack) == 0 {
		return Guard{}, false
	}
	return stack[len(stack)-1], true
}
