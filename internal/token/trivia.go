package token

import "strings"

type TriviaKind uint8

const (
	TriviaWhitespace TriviaKind = iota
	TriviaEndOfLine
	TriviaLineComment
	TriviaBlockComment
	TriviaDocComment
	// TriviaDisabledText is source inside an inactive conditional region.
	TriviaDisabledText

	TriviaIfDirective
	TriviaElifDirective
	TriviaElseDirective
	TriviaEndIfDirective
	TriviaDefineDirective
	TriviaUndefDirective
	TriviaRegionDirective
	TriviaEndRegionDirective
	TriviaPragmaDirective
	TriviaNullableDirective
	TriviaOtherDirective
)

var triviaNames = [...]string{
	TriviaWhitespace:         "Whitespace",
	TriviaEndOfLine:          "EndOfLine",
	TriviaLineComment:        "LineComment",
	TriviaBlockComment:       "BlockComment",
	TriviaDocComment:         "DocComment",
	TriviaDisabledText:       "DisabledText",
	TriviaIfDirective:        "IfDirective",
	TriviaElifDirective:      "ElifDirective",
	TriviaElseDirective:      "ElseDirective",
	TriviaEndIfDirective:     "EndIfDirective",
	TriviaDefineDirective:    "DefineDirective",
	TriviaUndefDirective:     "UndefDirective",
	TriviaRegionDirective:    "RegionDirective",
	TriviaEndRegionDirective: "EndRegionDirective",
	TriviaPragmaDirective:    "PragmaDirective",
	TriviaNullableDirective:  "NullableDirective",
	TriviaOtherDirective:     "OtherDirective",
}

func (k TriviaKind) String() string {
	if int(k) < len(triviaNames) {
		return triviaNames[k]
	}
	return "TriviaKind(?)"
}

// IsDirective reports whether the kind is a preprocessor directive.
func (k TriviaKind) IsDirective() bool {
	return k >= TriviaIfDirective && k <= TriviaOtherDirective
}

// IsComment reports whether the kind is a comment of any sort.
func (k TriviaKind) IsComment() bool {
	return k == TriviaLineComment || k == TriviaBlockComment || k == TriviaDocComment
}

var directiveKinds = map[string]TriviaKind{
	"if":        TriviaIfDirective,
	"elif":      TriviaElifDirective,
	"else":      TriviaElseDirective,
	"endif":     TriviaEndIfDirective,
	"define":    TriviaDefineDirective,
	"undef":     TriviaUndefDirective,
	"region":    TriviaRegionDirective,
	"endregion": TriviaEndRegionDirective,
	"pragma":    TriviaPragmaDirective,
	"nullable":  TriviaNullableDirective,
}

// DirectiveKind maps a directive keyword (without '#') to its trivia kind.
func DirectiveKind(keyword string) TriviaKind {
	if k, ok := directiveKinds[keyword]; ok {
		return k
	}
	return TriviaOtherDirective
}

// Trivia is non-semantic source text attached to a token.
// Trivia carries no position: positions are computed by the tree that owns it.
type Trivia struct {
	Kind TriviaKind
	Text string
}

// Whitespace builds a whitespace trivia.
func Whitespace(text string) Trivia { return Trivia{Kind: TriviaWhitespace, Text: text} }

// EndOfLine builds an end-of-line trivia.
func EndOfLine(text string) Trivia { return Trivia{Kind: TriviaEndOfLine, Text: text} }

// BlockComment builds a /* */ comment trivia.
func BlockComment(text string) Trivia { return Trivia{Kind: TriviaBlockComment, Text: text} }

// Directive builds a directive trivia such as "#if DEBUG".
func Directive(keyword, arg string) Trivia {
	text := "#" + keyword
	if arg != "" {
		text += " " + arg
	}
	return Trivia{Kind: DirectiveKind(keyword), Text: text}
}

// ConditionRange returns the byte range of the directive argument inside Text:
// everything after the keyword, without surrounding blanks and without a
// trailing // comment. ok is false for non-directive trivia.
func (t Trivia) ConditionRange() (start, end int, ok bool) {
	if !t.Kind.IsDirective() {
		return 0, 0, false
	}
	i := strings.IndexByte(t.Text, '#')
	if i < 0 {
		return 0, 0, false
	}
	i++
	for i < len(t.Text) && isBlank(t.Text[i]) {
		i++
	}
	for i < len(t.Text) && isLetter(t.Text[i]) {
		i++
	}
	for i < len(t.Text) && isBlank(t.Text[i]) {
		i++
	}
	end = len(t.Text)
	if c := strings.Index(t.Text[i:], "//"); c >= 0 {
		end = i + c
	}
	for end > i && isBlank(t.Text[end-1]) {
		end--
	}
	return i, end, true
}

// Condition returns the raw directive argument, e.g. "DEBUG && !TRACE" for
// "#if DEBUG && !TRACE // comment".
func (t Trivia) Condition() string {
	start, end, ok := t.ConditionRange()
	if !ok {
		return ""
	}
	return t.Text[start:end]
}

// WithCondition returns a copy of a directive trivia whose argument is replaced
// by cond. Everything before and after the argument is kept.
func (t Trivia) WithCondition(cond string) Trivia {
	start, end, ok := t.ConditionRange()
	if !ok {
		return t
	}
	prefix := t.Text[:start]
	if start > 0 && !isBlank(prefix[len(prefix)-1]) {
		prefix += " "
	}
	suffix := t.Text[end:]
	if suffix != "" && !isBlank(suffix[0]) {
		suffix = " " + suffix
	}
	return Trivia{Kind: t.Kind, Text: prefix + cond + suffix}
}

func isBlank(b byte) bool { return b == ' ' || b == '\t' }

func isLetter(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }
