package analysis

import (
	"efguard/internal/diag"
	"efguard/internal/match"
	"efguard/internal/settings"
	"efguard/internal/source"
)

// ConfigConnectionString checks that every literal connection name passed
// to the lookup method is present in the settings document.
type ConfigConnectionString struct{}

func (ConfigConnectionString) Name() string { return "config-connection-string" }

func (ConfigConnectionString) Codes() []diag.Code {
	return []diag.Code{diag.ConfigResourceMissing, diag.ConfigKeyMissing}
}

func (ConfigConnectionString) Run(pass *Pass) {
	cfg := pass.Config.Settings
	calls := match.Find(pass.Tree, pass.Config.LookupShape())
	eachIsolated(calls, func(c match.Call) {
		key, ok := c.Literal(0)
		if !ok {
			// computed names cannot be checked statically
			return
		}
		switch settings.Validate(pass.Settings, cfg.Section, key) {
		case settings.ResourceMissing:
			// every lookup repeats the same document-level finding; the
			// pass reporter keeps one
			b := diag.Report(pass.Reporter, diag.ConfigResourceMissing, source.NoSpan, cfg.File)
			if pass.Settings != nil && pass.Settings.Err != nil {
				b.WithNote(source.NoSpan, pass.Settings.Err.Error())
			}
			b.Emit()
		case settings.KeyMissing:
			diag.Report(pass.Reporter, diag.ConfigKeyMissing, c.AccessSpan(), cfg.File, key).Emit()
		}
	})
}
