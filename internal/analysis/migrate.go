package analysis

import (
	"efguard/internal/diag"
	"efguard/internal/directive"
	"efguard/internal/match"
)

// DevOnlyMigrate reports auto-migration calls that also compile in
// release builds.
type DevOnlyMigrate struct{}

func (DevOnlyMigrate) Name() string { return "dev-only-migrate" }

func (DevOnlyMigrate) Codes() []diag.Code { return []diag.Code{diag.DevGuardMissing} }

func (DevOnlyMigrate) Run(pass *Pass) {
	policy := pass.Config.Policy()
	calls := match.Find(pass.Tree, pass.Config.MigrateShape())
	eachIsolated(calls, func(c match.Call) {
		at := c.NameSpan()
		if g, ok := directive.ClosestGuard(pass.Tree, at.Start); ok && policy.Satisfied(g) {
			return
		}
		diag.Report(pass.Reporter, diag.DevGuardMissing, at).Emit()
	})
}
