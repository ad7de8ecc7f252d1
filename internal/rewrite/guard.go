package rewrite

import (
	"efguard/internal/directive"
	"efguard/internal/syntax"
	"efguard/internal/token"
)

// WrapInGuard surrounds stmt with `#if marker` / `#endif` lines. Comments
// and blank lines leading the statement stay above the #if; the
// statement keeps its indentation.
func WrapInGuard(tree *syntax.Tree, stmt syntax.NodeID, marker string) (*syntax.Tree, Result) {
	first, last := tree.FirstToken(stmt), tree.LastToken(stmt)
	if first == syntax.NoToken {
		return tree, Unchanged
	}
	eol := tree.EOL()
	ft := tree.Token(first)

	// split leading trivia into what precedes the statement line and the
	// indentation of that line
	k := lastEOL(ft.Leading)
	head := ft.Leading[:k+1]
	indent := ft.Leading[k+1:]
	var lineBreak []token.Trivia
	if k < 0 {
		if prev := tree.PrevToken(first); prev != syntax.NoToken && !endsWithEOL(tree.Token(prev).Trailing) {
			lineBreak = []token.Trivia{token.EndOfLine(eol)}
		}
	}
	leading := concat(head, lineBreak,
		[]token.Trivia{token.Directive("if", marker), token.EndOfLine(eol)},
		indent)

	repl := map[syntax.TokenID]*syntax.Token{first: ft.WithLeading(leading)}

	lt := repl[first]
	if last != first {
		lt = tree.Token(last)
	}
	endif := []token.Trivia{token.Directive("endif", ""), token.EndOfLine(eol)}
	if endsWithEOL(lt.Trailing) {
		lt = lt.WithTrailing(concat(lt.Trailing, endif))
	} else {
		lt = lt.WithTrailing(concat(lt.Trailing, []token.Trivia{token.EndOfLine(eol)}, endif))
	}
	repl[last] = lt
	return tree.ReplaceTokens(repl), Edited
}

// ReplaceGuardCondition rewrites the condition of the branch directive of g
// to marker. Nothing else changes; an #else has no condition and is left
// alone.
func ReplaceGuardCondition(tree *syntax.Tree, g directive.Guard, marker string) (*syntax.Tree, Result) {
	ref := g.Branch
	if ref.Trivia.Kind != token.TriviaIfDirective && ref.Trivia.Kind != token.TriviaElifDirective {
		return tree, Unchanged
	}
	tok := tree.Token(ref.Token)
	list := tok.Trailing
	if ref.Leading {
		list = tok.Leading
	}
	if ref.Index >= len(list) {
		return tree, Unchanged
	}
	updated := list[ref.Index].WithCondition(marker)
	if updated.Text == list[ref.Index].Text {
		return tree, Unchanged
	}
	cp := append([]token.Trivia(nil), list...)
	cp[ref.Index] = updated
	if ref.Leading {
		return tree.ReplaceToken(ref.Token, tok.WithLeading(cp)), Edited
	}
	return tree.ReplaceToken(ref.Token, tok.WithTrailing(cp)), Edited
}
