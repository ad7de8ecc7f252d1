package lexer_test

import (
	"strings"
	"testing"

	"efguard/internal/diag"
	"efguard/internal/lexer"
	"efguard/internal/source"
	"efguard/internal/token"
)

func lexAll(t *testing.T, src string, symbols ...string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.cs", []byte(src))
	bag := diag.NewBag(0)
	lx := lexer.New(fs.Get(id), lexer.Options{
		Symbols:  symbols,
		Reporter: &diag.BagReporter{Bag: bag},
	})
	return lx.All(), bag
}

func fullText(toks []token.Token) string {
	var b strings.Builder
	for _, tok := range toks {
		b.WriteString(tok.FullText())
	}
	return b.String()
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, tok := range toks {
		out = append(out, tok.Kind)
	}
	return out
}

func TestRoundTrip(t *testing.T) {
	cases := []string{
		"",
		"\n\n",
		"app.Database.Migrate();\n",
		"app?.Database.Migrate();\r\n",
		"\uFEFFusing System;\n",
		"/* header */ class A { void M() { var s = @\"a\"\"b\"; } }\n",
		"var s = $\"{a + \"x\"} {{literal}} {b}\";\n",
		"#if DEBUG\napp.Database.Migrate();\n#endif\n",
		"#if RELEASE\n  not even code ( \n#else\nx();\n#endif",
		"  // trailing comment without newline",
		"x = 1.5e3f + 0xFF_FFul - .5;",
		"c = '\\'';\n",
	}
	for _, src := range cases {
		toks, _ := lexAll(t, src, "DEBUG")
		if got := fullText(toks); got != src {
			t.Errorf("round trip mismatch:\n got %q\nwant %q", got, src)
		}
		if last := toks[len(toks)-1]; last.Kind != token.EOF {
			t.Errorf("last token = %v, want EOF", last.Kind)
		}
	}
}

func TestTokenKinds(t *testing.T) {
	toks, bag := lexAll(t, "app?.Database.Migrate(x => x ?? y);")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	want := []token.Kind{
		token.Ident, token.Question, token.Dot, token.Ident, token.Dot, token.Ident,
		token.LParen, token.Ident, token.FatArrow, token.Ident, token.QuestionQuestion, token.Ident,
		token.RParen, token.Semicolon, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kind[%d] = %v, want %v (all: %v)", i, got[i], want[i], got)
		}
	}
}

func TestGenericCloseIsSplit(t *testing.T) {
	toks, _ := lexAll(t, "List<List<int>>")
	gt := 0
	for _, tok := range toks {
		if tok.Kind == token.Gt {
			gt++
		}
	}
	if gt != 2 {
		t.Fatalf("expected two '>' tokens, got %d", gt)
	}
}

func TestKeywordsAndVerbatimIdent(t *testing.T) {
	toks, _ := lexAll(t, "return @return new")
	if toks[0].Kind != token.KwReturn {
		t.Errorf("return -> %v", toks[0].Kind)
	}
	if toks[1].Kind != token.Ident || toks[1].Text != "@return" {
		t.Errorf("@return -> %v %q", toks[1].Kind, toks[1].Text)
	}
	if toks[2].Kind != token.KwNew {
		t.Errorf("new -> %v", toks[2].Kind)
	}
}

func TestTrailingTriviaStopsAfterFirstEOL(t *testing.T) {
	toks, _ := lexAll(t, "a; // note\n\n  b;")
	semi := toks[1]
	if semi.Kind != token.Semicolon {
		t.Fatalf("toks[1] = %v", semi.Kind)
	}
	if n := len(semi.Trailing); n != 3 {
		t.Fatalf("trailing = %#v", semi.Trailing)
	}
	if semi.Trailing[2].Kind != token.TriviaEndOfLine {
		t.Fatalf("trailing should end with EOL: %#v", semi.Trailing)
	}
	b := toks[2]
	if len(b.Leading) != 2 || b.Leading[0].Kind != token.TriviaEndOfLine || b.Leading[1].Kind != token.TriviaWhitespace {
		t.Fatalf("leading of b = %#v", b.Leading)
	}
}

func TestDirectivesAreLeadingTrivia(t *testing.T) {
	toks, _ := lexAll(t, "#if DEBUG // dev\napp.Database.Migrate();\n#endif\n", "DEBUG")
	first := toks[0]
	if first.Text != "app" {
		t.Fatalf("first token %q", first.Text)
	}
	if len(first.Leading) != 2 {
		t.Fatalf("leading = %#v", first.Leading)
	}
	dir := first.Leading[0]
	if dir.Kind != token.TriviaIfDirective || dir.Text != "#if DEBUG // dev" {
		t.Fatalf("directive = %#v", dir)
	}
	if dir.Condition() != "DEBUG" {
		t.Fatalf("condition = %q", dir.Condition())
	}
	eof := toks[len(toks)-1]
	if len(eof.Leading) != 2 || eof.Leading[0].Kind != token.TriviaEndIfDirective {
		t.Fatalf("eof leading = %#v", eof.Leading)
	}
}

func TestInactiveRegionIsDisabledText(t *testing.T) {
	src := "#if RELEASE\napp.Database.Migrate();\n#endif\nx();\n"
	toks, _ := lexAll(t, src, "DEBUG")
	for _, tok := range toks {
		if tok.Text == "Migrate" {
			t.Fatalf("inactive code must not produce tokens")
		}
	}
	x := toks[0]
	if x.Text != "x" {
		t.Fatalf("first token %q", x.Text)
	}
	var sawDisabled bool
	for _, tv := range x.Leading {
		if tv.Kind == token.TriviaDisabledText {
			sawDisabled = true
			if tv.Text != "app.Database.Migrate();\n" {
				t.Fatalf("disabled text = %q", tv.Text)
			}
		}
	}
	if !sawDisabled {
		t.Fatalf("no disabled text in %#v", x.Leading)
	}
}

func TestElseBranchSelection(t *testing.T) {
	src := "#if RELEASE\na();\n#elif DEBUG\nb();\n#else\nc();\n#endif\n"
	toks, bag := lexAll(t, src, "DEBUG")
	if bag.Len() != 0 {
		t.Fatalf("diagnostics: %v", bag.Items())
	}
	var idents []string
	for _, tok := range toks {
		if tok.Kind == token.Ident {
			idents = append(idents, tok.Text)
		}
	}
	if strings.Join(idents, ",") != "b" {
		t.Fatalf("active identifiers = %v", idents)
	}
}

func TestDefineAffectsLaterConditions(t *testing.T) {
	src := "#define LOCAL\n#if LOCAL && !RELEASE\nx();\n#endif\n"
	toks, _ := lexAll(t, src)
	if toks[0].Text != "x" {
		t.Fatalf("expected x to be active, got %q", toks[0].Text)
	}
}

func TestUnbalancedDirectivesReported(t *testing.T) {
	_, bag := lexAll(t, "#endif\n#if DEBUG\nx();\n", "DEBUG")
	count := 0
	for _, d := range bag.Items() {
		if d.Code == diag.LexUnbalancedDirective {
			count++
		}
	}
	if count != 2 {
		t.Fatalf("want 2 unbalanced-directive diagnostics, got %v", bag.Items())
	}
}

func TestUnterminatedString(t *testing.T) {
	toks, bag := lexAll(t, "x = \"abc\ny;")
	if !bag.HasErrors() {
		t.Fatalf("expected an error")
	}
	if fullText(toks) != "x = \"abc\ny;" {
		t.Fatalf("round trip broken")
	}
}

func TestEvalCondition(t *testing.T) {
	defined := func(s string) bool { return s == "DEBUG" || s == "TRACE" }
	cases := []struct {
		expr string
		want bool
	}{
		{"DEBUG", true},
		{"!DEBUG", false},
		{"RELEASE", false},
		{"!RELEASE", true},
		{"DEBUG && TRACE", true},
		{"DEBUG && !(TRACE || RELEASE)", false},
		{"RELEASE || DEBUG", true},
		{"DEBUG == true", true},
		{"RELEASE != false", false},
	}
	for _, tc := range cases {
		got, err := lexer.EvalCondition(tc.expr, defined)
		if err != nil {
			t.Fatalf("%q: %v", tc.expr, err)
		}
		if got != tc.want {
			t.Errorf("%q = %v, want %v", tc.expr, got, tc.want)
		}
	}
	for _, bad := range []string{"", "DEBUG &&", "(DEBUG", "DEBUG)"} {
		if _, err := lexer.EvalCondition(bad, defined); err == nil {
			t.Errorf("%q: expected error", bad)
		}
	}
}
