// Package analysis holds the usage analyzers and their fix providers.
package analysis

import (
	"efguard/internal/config"
	"efguard/internal/diag"
	"efguard/internal/settings"
	"efguard/internal/syntax"
)

// Pass is the input of one analyzer run over one document.
type Pass struct {
	Tree *syntax.Tree
	// Settings is nil when no settings document was supplied.
	Settings *settings.Document
	Config   *config.Config
	Reporter diag.Reporter
}

// Analyzer inspects a tree and reports diagnostics.
type Analyzer interface {
	Name() string
	Codes() []diag.Code
	Run(pass *Pass)
}

// Analyzers returns the built-in analyzers in a stable order.
func Analyzers() []Analyzer {
	return []Analyzer{DevOnlyMigrate{}, ConfigConnectionString{}}
}

// eachIsolated runs fn for every item; a panic while handling one match is
// dropped so the remaining matches are still analyzed.
func eachIsolated[T any](items []T, fn func(T)) {
	for _, it := range items {
		func() {
			defer func() { _ = recover() }()
			fn(it)
		}()
	}
}
