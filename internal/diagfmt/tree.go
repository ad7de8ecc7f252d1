package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"efguard/internal/syntax"
)

// TreeOpts configures FormatTree.
type TreeOpts struct {
	// Trivia prints the trivia of each token on its own lines.
	Trivia bool
}

// FormatTree dumps the syntax tree one element per line, indented by depth:
//
//	ExpressionStatement 1:1-1:24
//	  Invocation 1:1-1:23
//	    ...
//	  Token Semicolon ";"
func FormatTree(w io.Writer, tree *syntax.Tree, opts TreeOpts) error {
	return dumpNode(w, tree, tree.Root(), 0, opts)
}

func dumpNode(w io.Writer, tree *syntax.Tree, n syntax.NodeID, depth int, opts TreeOpts) error {
	sp := tree.Span(n)
	start, end := tree.Position(sp.Start), tree.Position(sp.End)
	indent := strings.Repeat("  ", depth)
	if _, err := fmt.Fprintf(w, "%s%s %d:%d-%d:%d\n", indent, tree.Kind(n), start.Line, start.Col, end.Line, end.Col); err != nil {
		return err
	}
	for _, ref := range tree.Children(n) {
		if !ref.IsToken() {
			if err := dumpNode(w, tree, ref.Node, depth+1, opts); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "%s  Token %s %q\n", indent, tree.TokenKind(ref.Token), tree.TokenText(ref.Token)); err != nil {
			return err
		}
		if !opts.Trivia {
			continue
		}
		for _, tr := range tree.TokenTrivia(ref.Token) {
			side := "trailing"
			if tr.Leading {
				side = "leading"
			}
			if _, err := fmt.Fprintf(w, "%s    %s %s %q\n", indent, side, tr.Trivia.Kind, tr.Trivia.Text); err != nil {
				return err
			}
		}
	}
	return nil
}
