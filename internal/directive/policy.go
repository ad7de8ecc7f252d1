package directive

import (
	"golang.org/x/text/cases"

	"efguard/internal/token"
)

// Policy names the preprocessor markers of development and release builds.
type Policy struct {
	Development []string
	Release     []string
}

// DefaultPolicy is {DEBUG} / {RELEASE}.
func DefaultPolicy() Policy {
	return Policy{Development: []string{"DEBUG"}, Release: []string{"RELEASE"}}
}

// Satisfied reports whether code under g only compiles in development
// builds. For #if/#elif the branch condition must mention a development
// marker with none negated, or negate a release marker. An #else branch is
// development-only when the opening condition is release-only.
func (p Policy) Satisfied(g Guard) bool {
	if g.Kind() == token.TriviaElseDirective {
		return p.releaseOnly(g.Opening.Trivia.Condition())
	}
	return p.SatisfiedCondition(g.Condition())
}

// SatisfiedCondition applies the policy to a raw condition text. The check
// is token based and case-insensitive; no boolean simplification is done.
func (p Policy) SatisfiedCondition(cond string) bool {
	s := p.scan(cond)
	return (s.devPlain && !s.devNegated) || s.relNegated
}

func (p Policy) releaseOnly(cond string) bool {
	s := p.scan(cond)
	return (s.relPlain && !s.relNegated) || s.devNegated
}

type markerScan struct {
	devPlain, devNegated bool
	relPlain, relNegated bool
}

func (p Policy) scan(cond string) markerScan {
	fold := cases.Fold()
	dev := foldSet(fold, p.Development)
	rel := foldSet(fold, p.Release)

	var s markerScan
	for _, w := range words(cond) {
		name := fold.String(w.name)
		if dev[name] {
			if w.negated {
				s.devNegated = true
			} else {
				s.devPlain = true
			}
		}
		if rel[name] {
			if w.negated {
				s.relNegated = true
			} else {
				s.relPlain = true
			}
		}
	}
	return s
}

func foldSet(fold cases.Caser, names []string) map[string]bool {
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[fold.String(n)] = true
	}
	return out
}

type word struct {
	name    string
	negated bool
}

// words splits a condition into identifiers, marking those directly
// preceded by '!' (blanks allowed in between, "!=" excluded).
func words(cond string) []word {
	var out []word
	bang := false
	for i := 0; i < len(cond); {
		c := cond[i]
		switch {
		case isIdentByte(c):
			j := i
			for j < len(cond) && isIdentByte(cond[j]) {
				j++
			}
			out = append(out, word{name: cond[i:j], negated: bang})
			bang = false
			i = j
		case c == '!' && (i+1 >= len(cond) || cond[i+1] != '='):
			bang = !bang
			i++
		case c == ' ' || c == '\t':
			i++
		default:
			bang = false
			i++
		}
	}
	return out
}

func isIdentByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
