package directive_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"efguard/internal/directive"
	"efguard/internal/parser"
	"efguard/internal/token"
)

func guardAt(t *testing.T, src, marker string) (directive.Guard, bool) {
	t.Helper()
	tree := parser.ParseText("g.cs", src, "DEBUG")
	off := strings.Index(src, marker)
	require.GreaterOrEqual(t, off, 0)
	return directive.ClosestGuard(tree, uint32(off))
}

func TestNoGuard(t *testing.T) {
	_, ok := guardAt(t, "a();\nMigrate();\n", "Migrate")
	assert.False(t, ok)
}

func TestClosedGuardIsNotReturned(t *testing.T) {
	src := "#if DEBUG\na();\n#endif\nMigrate();\n"
	_, ok := guardAt(t, src, "Migrate")
	assert.False(t, ok)
}

func TestInnermostOpenGuard(t *testing.T) {
	src := "#if DEBUG\n#if TRACE\n#endif\n#if NET8\nMigrate();\n#endif\n#endif\n"
	tree := parser.ParseText("g.cs", src, "DEBUG", "NET8")
	g, ok := directive.ClosestGuard(tree, uint32(strings.Index(src, "Migrate")))
	require.True(t, ok)
	assert.Equal(t, "NET8", g.Condition())
}

func TestOuterGuardAfterInnerClosed(t *testing.T) {
	src := "#if DEBUG\n#if TRACE\nx();\n#endif\nMigrate();\n#endif\n"
	g, ok := guardAt(t, src, "Migrate")
	require.True(t, ok)
	assert.Equal(t, "DEBUG", g.Condition())
	assert.Equal(t, token.TriviaIfDirective, g.Kind())
}

func TestElseBranch(t *testing.T) {
	src := "#if RELEASE\nx();\n#else\nMigrate();\n#endif\n"
	g, ok := guardAt(t, src, "Migrate")
	require.True(t, ok)
	assert.Equal(t, token.TriviaElseDirective, g.Kind())
	assert.Equal(t, "RELEASE", g.Opening.Trivia.Condition())
	assert.True(t, directive.DefaultPolicy().Satisfied(g))
}

func TestElifBranch(t *testing.T) {
	src := "#if RELEASE\nx();\n#elif STAGING\nMigrate();\n#endif\n"
	tree := parser.ParseText("g.cs", src, "STAGING")
	g, ok := directive.ClosestGuard(tree, uint32(strings.Index(src, "Migrate")))
	require.True(t, ok)
	assert.Equal(t, token.TriviaElifDirective, g.Kind())
	assert.Equal(t, "STAGING", g.Condition())
	assert.False(t, directive.DefaultPolicy().Satisfied(g))
}

func TestPolicyConditions(t *testing.T) {
	p := directive.DefaultPolicy()
	cases := []struct {
		cond string
		want bool
	}{
		{"DEBUG", true},
		{"debug", true},
		{"!DEBUG", false},
		{"DEBUG && !DEBUG", false},
		{"!RELEASE", true},
		{"! RELEASE", true},
		{"RELEASE", false},
		{"DEBUG || RELEASE", true},
		{"DEBUGGER", false},
		{"DEBUG != RELEASE", true},
		{"TRACE", false},
		{"", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, p.SatisfiedCondition(tc.cond), tc.cond)
	}
}

func TestCustomPolicy(t *testing.T) {
	p := directive.Policy{Development: []string{"DEV", "LOCAL"}, Release: []string{"PROD"}}
	assert.True(t, p.SatisfiedCondition("LOCAL"))
	assert.True(t, p.SatisfiedCondition("!prod"))
	assert.False(t, p.SatisfiedCondition("DEBUG"))
}
