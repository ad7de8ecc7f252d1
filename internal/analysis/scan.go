package analysis

import (
	"efguard/internal/config"
	"efguard/internal/diag"
	"efguard/internal/settings"
	"efguard/internal/syntax"
)

// Run executes analyzers over one tree and returns the sorted findings.
// Identical findings are reported once.
func Run(tree *syntax.Tree, doc *settings.Document, cfg *config.Config, analyzers ...Analyzer) []diag.Diagnostic {
	if cfg == nil {
		cfg = config.Default()
	}
	if len(analyzers) == 0 {
		analyzers = Analyzers()
	}
	bag := diag.NewBag(0)
	pass := &Pass{
		Tree:     tree,
		Settings: doc,
		Config:   cfg,
		Reporter: diag.NewDedupReporter(&diag.BagReporter{Bag: bag}),
	}
	for _, a := range analyzers {
		a.Run(pass)
	}
	bag.Sort()
	return bag.Items()
}

// Scan runs the built-in analyzers.
func Scan(tree *syntax.Tree, doc *settings.Document, cfg *config.Config) []diag.Diagnostic {
	return Run(tree, doc, cfg)
}

// Fix applies the fix registered for d. Diagnostics without a fix, or
// whose fix does not apply, return tree itself.
func Fix(tree *syntax.Tree, d diag.Diagnostic, cfg *config.Config) *syntax.Tree {
	if cfg == nil {
		cfg = config.Default()
	}
	f := FixerFor(d.Code)
	if f == nil {
		return tree
	}
	out, _ := f.Fix(tree, d, cfg)
	return out
}
