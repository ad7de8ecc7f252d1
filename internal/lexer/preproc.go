package lexer

import (
	"fmt"

	"efguard/internal/diag"
	"efguard/internal/source"
	"efguard/internal/token"
)

type ppFrame struct {
	parentActive bool
	active       bool
	taken        bool // some branch of this #if chain was already active
	sawElse      bool
	span         source.Span
}

// preproc tracks conditional compilation state while lexing.
type preproc struct {
	symbols map[string]bool
	frames  []ppFrame
}

func newPreproc(symbols []string) preproc {
	set := make(map[string]bool, len(symbols))
	for _, s := range symbols {
		set[s] = true
	}
	return preproc{symbols: set}
}

func (p *preproc) active() bool {
	if len(p.frames) == 0 {
		return true
	}
	return p.frames[len(p.frames)-1].active
}

func (p *preproc) apply(lx *Lexer, tv token.Trivia, sp source.Span) {
	switch tv.Kind {
	case token.TriviaIfDirective:
		parent := p.active()
		val := parent && p.eval(lx, tv, sp)
		p.frames = append(p.frames, ppFrame{parentActive: parent, active: val, taken: val, span: sp})
	case token.TriviaElifDirective:
		top := p.top(lx, sp, "#elif")
		if top == nil {
			return
		}
		if top.sawElse {
			lx.warnLex(diag.LexUnbalancedDirective, sp, "#elif after #else")
		}
		if top.taken {
			top.active = false
			return
		}
		top.active = top.parentActive && p.eval(lx, tv, sp)
		top.taken = top.active
	case token.TriviaElseDirective:
		top := p.top(lx, sp, "#else")
		if top == nil {
			return
		}
		if top.sawElse {
			lx.warnLex(diag.LexUnbalancedDirective, sp, "duplicate #else")
		}
		top.sawElse = true
		top.active = top.parentActive && !top.taken
		top.taken = true
	case token.TriviaEndIfDirective:
		if p.top(lx, sp, "#endif") == nil {
			return
		}
		p.frames = p.frames[:len(p.frames)-1]
	case token.TriviaDefineDirective:
		if p.active() {
			p.symbols[tv.Condition()] = true
		}
	case token.TriviaUndefDirective:
		if p.active() {
			delete(p.symbols, tv.Condition())
		}
	}
}

func (p *preproc) top(lx *Lexer, sp source.Span, what string) *ppFrame {
	if len(p.frames) == 0 {
		lx.warnLex(diag.LexUnbalancedDirective, sp, fmt.Sprintf("%s without matching #if", what))
		return nil
	}
	return &p.frames[len(p.frames)-1]
}

// finish reports every conditional left open at end of file.
func (p *preproc) finish(lx *Lexer) {
	for i := len(p.frames) - 1; i >= 0; i-- {
		lx.warnLex(diag.LexUnbalancedDirective, p.frames[i].span, "missing #endif")
	}
	p.frames = nil
}

func (p *preproc) eval(lx *Lexer, tv token.Trivia, sp source.Span) bool {
	v, err := EvalCondition(tv.Condition(), func(name string) bool { return p.symbols[name] })
	if err != nil {
		lx.warnLex(diag.LexBadDirective, sp, err.Error())
		return false
	}
	return v
}

// EvalCondition evaluates a preprocessor expression such as
// "DEBUG && !(TRACE || false)". defined reports whether a symbol is set.
func EvalCondition(expr string, defined func(string) bool) (bool, error) {
	e := condEval{src: expr, defined: defined}
	e.next()
	v := e.or()
	if e.err != nil {
		return false, e.err
	}
	if e.tok != "" {
		return false, fmt.Errorf("unexpected %q in %q", e.tok, expr)
	}
	return v, nil
}

type condEval struct {
	src     string
	pos     int
	tok     string
	defined func(string) bool
	err     error
}

func (e *condEval) next() {
	for e.pos < len(e.src) && isBlankByte(e.src[e.pos]) {
		e.pos++
	}
	if e.pos >= len(e.src) {
		e.tok = ""
		return
	}
	start := e.pos
	c := e.src[e.pos]
	switch {
	case isIdentStartByte(c):
		for e.pos < len(e.src) && isIdentContinueByte(e.src[e.pos]) {
			e.pos++
		}
	case c == '&' || c == '|' || c == '=':
		if e.pos+1 < len(e.src) && e.src[e.pos+1] == c {
			e.pos += 2
		} else {
			e.pos++
		}
	case c == '!':
		e.pos++
		if e.pos < len(e.src) && e.src[e.pos] == '=' {
			e.pos++
		}
	default:
		e.pos++
	}
	e.tok = e.src[start:e.pos]
}

func (e *condEval) fail(format string, args ...any) bool {
	if e.err == nil {
		e.err = fmt.Errorf(format, args...)
	}
	e.tok = ""
	return false
}

func (e *condEval) or() bool {
	v := e.and()
	for e.tok == "||" {
		e.next()
		r := e.and()
		v = v || r
	}
	return v
}

func (e *condEval) and() bool {
	v := e.eq()
	for e.tok == "&&" {
		e.next()
		r := e.eq()
		v = v && r
	}
	return v
}

func (e *condEval) eq() bool {
	v := e.unary()
	for e.tok == "==" || e.tok == "!=" {
		op := e.tok
		e.next()
		r := e.unary()
		if op == "==" {
			v = v == r
		} else {
			v = v != r
		}
	}
	return v
}

func (e *condEval) unary() bool {
	if e.tok == "!" {
		e.next()
		return !e.unary()
	}
	return e.primary()
}

func (e *condEval) primary() bool {
	switch tok := e.tok; {
	case tok == "":
		return e.fail("missing operand in %q", e.src)
	case tok == "(":
		e.next()
		v := e.or()
		if e.tok != ")" {
			return e.fail("missing ')' in %q", e.src)
		}
		e.next()
		return v
	case tok == "true":
		e.next()
		return true
	case tok == "false":
		e.next()
		return false
	case isIdentStartByte(tok[0]):
		e.next()
		return e.defined(tok)
	default:
		return e.fail("unexpected %q in %q", tok, e.src)
	}
}
