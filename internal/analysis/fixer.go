package analysis

import (
	"efguard/internal/config"
	"efguard/internal/diag"
	"efguard/internal/directive"
	"efguard/internal/match"
	"efguard/internal/rewrite"
	"efguard/internal/syntax"
)

// Fixer turns a diagnostic into a tree edit.
type Fixer interface {
	Codes() []diag.Code
	Title() string
	Fix(tree *syntax.Tree, d diag.Diagnostic, cfg *config.Config) (*syntax.Tree, rewrite.Result)
}

// Fixers returns the built-in fix providers.
func Fixers() []Fixer {
	return []Fixer{GuardFixer{}, SettingsFixer{}}
}

// FixerFor returns the provider registered for code, or nil.
func FixerFor(code diag.Code) Fixer {
	for _, f := range Fixers() {
		for _, c := range f.Codes() {
			if c == code {
				return f
			}
		}
	}
	return nil
}

// GuardFixer places an auto-migration under a development-only guard:
// without an enclosing guard the statement is wrapped, under a failing
// #if/#elif the condition is replaced. An #else branch gets a nested guard.
type GuardFixer struct{}

func (GuardFixer) Codes() []diag.Code { return []diag.Code{diag.DevGuardMissing} }

func (GuardFixer) Title() string { return "Surround with correct #if directive" }

func (GuardFixer) Fix(tree *syntax.Tree, d diag.Diagnostic, cfg *config.Config) (*syntax.Tree, rewrite.Result) {
	if d.Code != diag.DevGuardMissing || !d.HasLocation() {
		return tree, rewrite.Unchanged
	}
	at := d.Primary.Start
	inv := match.InvocationAt(tree, at)
	if inv == syntax.NoNode {
		return tree, rewrite.Unchanged
	}
	g, ok := directive.ClosestGuard(tree, at)
	switch {
	case ok && cfg.Policy().Satisfied(g):
		return tree, rewrite.Unchanged
	case ok && g.Condition() != "":
		return rewrite.ReplaceGuardCondition(tree, g, cfg.Guard.Marker)
	default:
		stmt := rewrite.EnclosingStatement(tree, inv)
		if stmt == syntax.NoNode {
			return tree, rewrite.Unchanged
		}
		return rewrite.WrapInGuard(tree, stmt, cfg.Guard.Marker)
	}
}

// SettingsFixer documents a missing connection string with a comment block
// next to the nearest preceding context registration.
type SettingsFixer struct{}

func (SettingsFixer) Codes() []diag.Code { return []diag.Code{diag.ConfigKeyMissing} }

func (SettingsFixer) Title() string { return "Generate configuration settings" }

func (SettingsFixer) Fix(tree *syntax.Tree, d diag.Diagnostic, cfg *config.Config) (*syntax.Tree, rewrite.Result) {
	if d.Code != diag.ConfigKeyMissing || !d.HasLocation() {
		return tree, rewrite.Unchanged
	}
	anchor, ok := match.NearestPreceding(tree, d.Primary.Start, cfg.Settings.AnchorPrefix)
	if !ok {
		return tree, rewrite.Unchanged
	}
	return rewrite.InsertCommentBlock(tree, anchor.Dot, cfg.Note(d.Arg(1)))
}
