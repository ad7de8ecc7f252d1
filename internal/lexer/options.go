package lexer

import (
	"efguard/internal/diag"
	"efguard/internal/source"
)

// Options configures a Lexer.
type Options struct {
	// Symbols are the preprocessor symbols of the build configuration
	// (e.g. DEBUG). They decide which conditional regions are active.
	Symbols []string
	// Reporter may be nil; errors are then dropped and lexing continues.
	Reporter diag.Reporter
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(diag.NewError(code, sp, msg))
	}
}

func (lx *Lexer) warnLex(code diag.Code, sp source.Span, args ...string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(diag.New(code, sp, args...))
	}
}
