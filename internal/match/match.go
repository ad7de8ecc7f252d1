// Package match finds call sites by shape. Matching is purely syntactic
// and case-insensitive: a local variable that shadows Database still
// matches.
package match

import (
	"strings"

	"efguard/internal/source"
	"efguard/internal/syntax"
	"efguard/internal/token"
)

// Shape describes `<receiver>.Method(args)`.
type Shape struct {
	// Receiver is the member the callee is accessed on ("Database"); empty
	// accepts any receiver.
	Receiver string
	Method   string
	// Args is the required argument count; negative means any.
	Args int
}

// Call is one matched invocation.
type Call struct {
	tree       *syntax.Tree
	Invocation syntax.NodeID
	// Access is the MemberAccess or MemberBinding naming the method.
	Access  syntax.NodeID
	Name    syntax.TokenID
	ArgList syntax.NodeID
}

// Find returns the invocations matching s in document order.
func Find(tree *syntax.Tree, s Shape) []Call {
	var out []Call
	tree.Walk(tree.Root(), func(n syntax.NodeID) bool {
		if tree.Kind(n) != syntax.Invocation {
			return true
		}
		if c, ok := matchInvocation(tree, n, s); ok {
			out = append(out, c)
		}
		return true
	})
	return out
}

func matchInvocation(tree *syntax.Tree, inv syntax.NodeID, s Shape) (Call, bool) {
	kids := tree.ChildNodes(inv)
	if len(kids) < 2 {
		return Call{}, false
	}
	callee, args := kids[0], kids[1]
	if tree.Kind(args) != syntax.ArgumentList {
		return Call{}, false
	}
	name := memberName(tree, callee)
	if name == syntax.NoToken || !strings.EqualFold(tree.TokenText(name), s.Method) {
		return Call{}, false
	}
	if s.Receiver != "" {
		recv := receiverName(tree, callee)
		if recv == syntax.NoToken || !strings.EqualFold(tree.TokenText(recv), s.Receiver) {
			return Call{}, false
		}
	}
	c := Call{tree: tree, Invocation: inv, Access: callee, Name: name, ArgList: args}
	if s.Args >= 0 && len(c.Args()) != s.Args {
		return Call{}, false
	}
	return c, true
}

// memberName returns the name token of a MemberAccess or MemberBinding.
func memberName(tree *syntax.Tree, n syntax.NodeID) syntax.TokenID {
	switch tree.Kind(n) {
	case syntax.MemberAccess, syntax.MemberBinding:
		kids := tree.ChildNodes(n)
		if len(kids) == 0 {
			return syntax.NoToken
		}
		return nameToken(tree, kids[len(kids)-1])
	}
	return syntax.NoToken
}

func nameToken(tree *syntax.Tree, n syntax.NodeID) syntax.TokenID {
	if !tree.Kind(n).IsName() {
		return syntax.NoToken
	}
	return tree.FirstToken(n)
}

// receiverName returns the last name of the expression the callee is
// accessed on: `a.Database` in `a.Database.Migrate`, the binding in
// `a?.Database.Migrate`, or the conditional receiver in `db?.Migrate`.
func receiverName(tree *syntax.Tree, callee syntax.NodeID) syntax.TokenID {
	var recv syntax.NodeID
	switch tree.Kind(callee) {
	case syntax.MemberAccess:
		recv = tree.ChildNodes(callee)[0]
	case syntax.MemberBinding:
		recv = conditionalReceiver(tree, callee)
	default:
		return syntax.NoToken
	}
	if recv == syntax.NoNode {
		return syntax.NoToken
	}
	switch tree.Kind(recv) {
	case syntax.MemberAccess, syntax.MemberBinding:
		return memberName(tree, recv)
	case syntax.IdentifierName, syntax.GenericName:
		return nameToken(tree, recv)
	}
	return syntax.NoToken
}

// conditionalReceiver finds the expression a member binding is bound to:
// the left side of the closest ConditionalAccess whose right side holds it.
func conditionalReceiver(tree *syntax.Tree, binding syntax.NodeID) syntax.NodeID {
	child := binding
	for p := tree.Parent(binding); p != syntax.NoNode; p = tree.Parent(p) {
		if tree.Kind(p) == syntax.ConditionalAccess {
			kids := tree.ChildNodes(p)
			if len(kids) == 2 && kids[1] == child {
				return kids[0]
			}
		}
		child = p
	}
	return syntax.NoNode
}

// Args returns the Argument nodes of the call.
func (c Call) Args() []syntax.NodeID {
	var out []syntax.NodeID
	for _, n := range c.tree.ChildNodes(c.ArgList) {
		if c.tree.Kind(n) == syntax.Argument {
			out = append(out, n)
		}
	}
	return out
}

// Literal returns the value of argument i when it is a plain or verbatim
// string literal. Interpolated strings and other expressions yield false.
func (c Call) Literal(i int) (string, bool) {
	args := c.Args()
	if i < 0 || i >= len(args) {
		return "", false
	}
	kids := c.tree.ChildNodes(args[i])
	if len(kids) == 0 {
		return "", false
	}
	expr := kids[len(kids)-1]
	if c.tree.Kind(expr) != syntax.Literal {
		return "", false
	}
	tk := c.tree.FirstToken(expr)
	if c.tree.TokenKind(tk) != token.StringLit {
		return "", false
	}
	return StringValue(c.tree.TokenText(tk))
}

// AccessSpan covers the member access naming the method, e.g.
// `cfg.GetConnectionString`.
func (c Call) AccessSpan() source.Span { return c.tree.Span(c.Access) }

// NameSpan covers the method name token.
func (c Call) NameSpan() source.Span { return c.tree.TokenSpan(c.Name) }
