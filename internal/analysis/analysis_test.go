package analysis_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"efguard/internal/analysis"
	"efguard/internal/config"
	"efguard/internal/diag"
	"efguard/internal/parser"
	"efguard/internal/settings"
	"efguard/internal/syntax"
)

func parse(src string, symbols ...string) *syntax.Tree {
	return parser.ParseText("Program.cs", src, symbols...)
}

func codes(ds []diag.Diagnostic) []diag.Code {
	out := make([]diag.Code, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.Code)
	}
	return out
}

const unguarded = "var app = builder.Build();\napp.Database.Migrate();\napp.Run();\n"

func TestUnguardedMigrate(t *testing.T) {
	cfg := config.Default()
	for _, symbols := range [][]string{{"DEBUG"}, {"RELEASE"}} {
		t.Run(strings.Join(symbols, ","), func(t *testing.T) {
			tree := parse(unguarded, symbols...)
			ds := analysis.Scan(tree, nil, cfg)
			require.Len(t, ds, 1)
			d := ds[0]
			assert.Equal(t, diag.DevGuardMissing, d.Code)
			assert.Equal(t, diag.SevWarning, d.Severity)
			assert.Equal(t, "Migrate", tree.Text()[d.Primary.Start:d.Primary.End])

			fixed := analysis.Fix(tree, d, cfg)
			assert.Equal(t,
				"var app = builder.Build();\n#if DEBUG\napp.Database.Migrate();\n#endif\napp.Run();\n",
				fixed.Text())
			assert.Equal(t, unguarded, tree.Text())

			reparsed := parse(fixed.Text(), symbols...)
			assert.Empty(t, analysis.Scan(reparsed, nil, cfg))
			assert.Empty(t, analysis.Scan(fixed, nil, cfg))
		})
	}
}

func TestGuardedMigrate(t *testing.T) {
	cfg := config.Default()
	cases := map[string]string{
		"debug":           "#if DEBUG\napp.Database.Migrate();\n#endif\n",
		"lowercase":       "#if debug\napp.Database.Migrate();\n#endif\n",
		"not release":     "#if !RELEASE\napp.Database.Migrate();\n#endif\n",
		"else of release": "#if RELEASE\napp.Run();\n#else\napp.Database.Migrate();\n#endif\n",
		"nested closed":   "#if DEBUG\n#if TRACE\nx();\n#endif\napp.Database.Migrate();\n#endif\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			for _, symbols := range [][]string{{"DEBUG"}, {"RELEASE"}, {"debug", "TRACE"}} {
				ds := analysis.Scan(parse(src, symbols...), nil, cfg)
				assert.Empty(t, ds, "symbols %v", symbols)
			}
		})
	}
}

func TestWrongGuardConditionIsReplaced(t *testing.T) {
	cfg := config.Default()
	src := "#if TRACE\napp.Database.Migrate();\n#endif\n"
	tree := parse(src, "TRACE")
	ds := analysis.Scan(tree, nil, cfg)
	require.Equal(t, []diag.Code{diag.DevGuardMissing}, codes(ds))

	fixed := analysis.Fix(tree, ds[0], cfg)
	assert.Equal(t, "#if DEBUG\napp.Database.Migrate();\n#endif\n", fixed.Text())
	assert.Empty(t, analysis.Scan(parse(fixed.Text(), "DEBUG"), nil, cfg))
}

func TestElseOfUnrelatedGuardGetsNestedGuard(t *testing.T) {
	cfg := config.Default()
	src := "#if TRACE\nx();\n#else\napp.Database.Migrate();\n#endif\n"
	tree := parse(src, "DEBUG")
	ds := analysis.Scan(tree, nil, cfg)
	require.Equal(t, []diag.Code{diag.DevGuardMissing}, codes(ds))

	fixed := analysis.Fix(tree, ds[0], cfg)
	assert.Equal(t, "#if TRACE\nx();\n#else\n#if DEBUG\napp.Database.Migrate();\n#endif\n#endif\n", fixed.Text())
	assert.Empty(t, analysis.Scan(parse(fixed.Text(), "DEBUG"), nil, cfg))
}

const lookup = "builder.Services.AddDbContext<SampleContext>(options =>\n" +
	"    options.UseSqlite(builder.Configuration.GetConnectionString(\"SampleDatabase\")));\n"

func TestSettingsResourceMissing(t *testing.T) {
	cfg := config.Default()
	src := lookup + "var other = builder.Configuration.GetConnectionString(\"Other\");\n"
	ds := analysis.Scan(parse(src), nil, cfg)
	require.Len(t, ds, 1)
	d := ds[0]
	assert.Equal(t, diag.ConfigResourceMissing, d.Code)
	assert.False(t, d.HasLocation())
	assert.Equal(t, "appsettings.json", d.Arg(0))

	// no fix is offered
	tree := parse(src)
	assert.Same(t, tree, analysis.Fix(tree, d, cfg))
	assert.Nil(t, analysis.FixerFor(diag.ConfigResourceMissing))
}

func TestSettingsUnreadableIsResourceMissing(t *testing.T) {
	doc := &settings.Document{Path: "appsettings.json", Err: assert.AnError}
	ds := analysis.Scan(parse(lookup), doc, config.Default())
	require.Equal(t, []diag.Code{diag.ConfigResourceMissing}, codes(ds))
	require.Len(t, ds[0].Notes, 1)
}

func TestSettingsKeyMissing(t *testing.T) {
	cfg := config.Default()
	doc := &settings.Document{
		Path: "appsettings.json",
		Text: `{"ConnectionStrings": {"DatabaseSample": "Data Source=x.db"}}`,
	}
	tree := parse(lookup)
	ds := analysis.Scan(tree, doc, cfg)
	require.Len(t, ds, 1)
	d := ds[0]
	assert.Equal(t, diag.ConfigKeyMissing, d.Code)
	assert.Equal(t, "SampleDatabase", d.Arg(1))
	assert.Contains(t, d.Message, "'SampleDatabase'")
	assert.Equal(t, "builder.Configuration.GetConnectionString",
		tree.Text()[d.Primary.Start:d.Primary.End])

	fixed := analysis.Fix(tree, d, cfg)
	text := fixed.Text()
	require.NotEqual(t, lookup, text)
	assert.Contains(t, text, "/* Ensure the below JSON snippet exists in appsettings.json.\n")
	assert.Contains(t, text, `"SampleDatabase": "Data Source=LocalDatabase.db"`)
	assert.Less(t, strings.Index(text, "/*"), strings.Index(text, ".AddDbContext"))
	assert.Equal(t, text, parse(text).Text())

	// the comment does not satisfy the check, and a second fix is a no-op
	again := analysis.Scan(fixed, doc, cfg)
	require.Equal(t, []diag.Code{diag.ConfigKeyMissing}, codes(again))
	assert.Equal(t, text, analysis.Fix(fixed, again[0], cfg).Text())
}

func TestSettingsKeyPresent(t *testing.T) {
	doc := &settings.Document{
		Path: "appsettings.json",
		Text: `{"ConnectionStrings": {"SampleDatabase": "Data Source=x.db"}}`,
	}
	assert.Empty(t, analysis.Scan(parse(lookup), doc, config.Default()))
}

func TestComputedConnectionNameIsSkipped(t *testing.T) {
	src := "var name = \"SampleDatabase\";\nvar cs = cfg.GetConnectionString(name);\n" +
		"var interp = cfg.GetConnectionString($\"{name}\");\n"
	assert.Empty(t, analysis.Scan(parse(src), nil, config.Default()))
}

func TestSettingsFixWithoutAnchor(t *testing.T) {
	cfg := config.Default()
	doc := &settings.Document{Path: "appsettings.json", Text: `{"ConnectionStrings": {}}`}
	tree := parse("var cs = cfg.GetConnectionString(\"SampleDatabase\");\n")
	ds := analysis.Scan(tree, doc, cfg)
	require.Equal(t, []diag.Code{diag.ConfigKeyMissing}, codes(ds))
	assert.Same(t, tree, analysis.Fix(tree, ds[0], cfg))
}

func TestRunSelectedAnalyzers(t *testing.T) {
	src := unguarded + lookup
	ds := analysis.Run(parse(src), nil, config.Default(), analysis.DevOnlyMigrate{})
	assert.Equal(t, []diag.Code{diag.DevGuardMissing}, codes(ds))

	all := analysis.Scan(parse(src), nil, config.Default())
	// document-level diagnostics sort first
	assert.Equal(t, []diag.Code{diag.ConfigResourceMissing, diag.DevGuardMissing}, codes(all))
}

func TestFixerTitles(t *testing.T) {
	assert.Equal(t, "Surround with correct #if directive", analysis.FixerFor(diag.DevGuardMissing).Title())
	assert.Equal(t, "Generate configuration settings", analysis.FixerFor(diag.ConfigKeyMissing).Title())
}
