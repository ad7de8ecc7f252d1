package rewrite

import (
	"encoding/json"
	"strings"

	"efguard/internal/syntax"
	"efguard/internal/token"
)

// Note is the content of the settings comment block.
type Note struct {
	// File is the settings file name shown in the header line.
	File    string
	Section string
	Key     string
	// Value is the placeholder connection string.
	Value string
}

func (n Note) header() string {
	return "/* Ensure the below JSON snippet exists in " + n.File + "."
}

// InsertCommentBlock adds a /* ... */ block with a JSON snippet for note to
// the leading trivia of anchor, followed by a line break and the anchor
// indentation. An identical block already in place leaves the tree
// unchanged.
func InsertCommentBlock(tree *syntax.Tree, anchor syntax.TokenID, note Note) (*syntax.Tree, Result) {
	if anchor == syntax.NoToken {
		return tree, Unchanged
	}
	tok := tree.Token(anchor)
	eol := tree.EOL()
	ws := anchorIndent(tree, anchor)
	body := note.render(ws, eol)
	for _, tv := range tok.Leading {
		if tv.Kind == token.TriviaBlockComment && tv.Text == body {
			return tree, Unchanged
		}
	}

	leading := concat(tok.Leading, []token.Trivia{
		token.BlockComment(body),
		token.EndOfLine(eol),
	})
	if ws != "" {
		leading = append(leading, token.Whitespace(ws))
	}
	return tree.ReplaceToken(anchor, tok.WithLeading(leading)), Edited
}

func (n Note) render(ws, eol string) string {
	unit := "    "
	if strings.Contains(ws, "\t") {
		unit = "\t"
	}
	var b strings.Builder
	line := func(depth int, s string) {
		b.WriteString(ws)
		b.WriteString(strings.Repeat(unit, depth))
		b.WriteString(s)
		b.WriteString(eol)
	}
	b.WriteString(n.header())
	b.WriteString(eol)
	line(1, "{")
	line(2, quote(n.Section)+": {")
	line(3, quote(n.Key)+": "+quote(n.Value))
	line(2, "}")
	line(1, "}")
	b.WriteString(ws)
	b.WriteString("*/")
	return b.String()
}

func quote(s string) string {
	data, err := json.Marshal(s)
	if err != nil {
		return `"` + s + `"`
	}
	return string(data)
}

// anchorIndent is the whitespace the anchor line starts with. When the
// anchor does not start its line (`services.AddDbContext`), the line
// indentation plus one unit is used for the continuation.
func anchorIndent(tree *syntax.Tree, anchor syntax.TokenID) string {
	tok := tree.Token(anchor)
	if k := lastEOL(tok.Leading); k >= 0 || tree.PrevToken(anchor) == syntax.NoToken || endsWithEOL(tree.Token(tree.PrevToken(anchor)).Trailing) {
		var ws strings.Builder
		for _, tv := range tok.Leading[k+1:] {
			if tv.Kind == token.TriviaWhitespace {
				ws.WriteString(tv.Text)
			}
		}
		return ws.String()
	}
	text := tree.Text()
	start := tree.TokenSpan(anchor).Start
	ls := strings.LastIndexAny(text[:start], "\r\n") + 1
	i := ls
	for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
		i++
	}
	indent := text[ls:i]
	if strings.Contains(indent, "\t") {
		return indent + "\t"
	}
	return indent + "    "
}
