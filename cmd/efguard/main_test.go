package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"efguard/internal/config"
	"efguard/internal/diag"
	"efguard/internal/diagfmt"
	"efguard/internal/driver"
	"efguard/internal/source"
)

const lookup = "var cs = cfg.GetConnectionString(\"Db\");\n"

func memProject(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for name, text := range files {
		require.NoError(t, afero.WriteFile(fsys, name, []byte(text), 0o644))
	}
	return fsys
}

func shortOutput() diagOutput {
	return diagOutput{format: "short", pathMode: diagfmt.PathModeBasename}
}

func TestDiagnoseReportsMissingResourceOnce(t *testing.T) {
	fsys := memProject(t, map[string]string{
		"/proj/A.cs": lookup,
		"/proj/B.cs": lookup,
	})
	var buf bytes.Buffer
	failed, err := diagnose(context.Background(), &buf, "/proj", true, driver.Options{Fs: fsys}, shortOutput())
	require.NoError(t, err)
	assert.True(t, failed)
	assert.Equal(t, 1, strings.Count(buf.String(), "CONFIG-RESOURCE-MISSING"))
}

func TestDiagnoseWarningsOnlyDoNotFail(t *testing.T) {
	fsys := memProject(t, map[string]string{
		"/proj/Program.cs": "app.Database.Migrate();\n",
	})
	var buf bytes.Buffer
	failed, err := diagnose(context.Background(), &buf, "/proj/Program.cs", false, driver.Options{Fs: fsys}, shortOutput())
	require.NoError(t, err)
	assert.False(t, failed)
	assert.Contains(t, buf.String(), "Program.cs:1:14: WARNING: DEV-GUARD-MISSING")
}

func TestDiagnoseWarningsAsErrors(t *testing.T) {
	fsys := memProject(t, map[string]string{
		"/proj/Program.cs": "app.Database.Migrate();\n",
	})
	out := shortOutput()
	out.warningsAsErrors = true
	var buf bytes.Buffer
	failed, err := diagnose(context.Background(), &buf, "/proj/Program.cs", false, driver.Options{Fs: fsys}, out)
	require.NoError(t, err)
	assert.True(t, failed)
	assert.Contains(t, buf.String(), "ERROR: DEV-GUARD-MISSING")
}

func TestDiagnoseJSON(t *testing.T) {
	fsys := memProject(t, map[string]string{
		"/proj/Program.cs": "#if DEBUG\napp.Database.Migrate();\n#endif\n",
	})
	out := shortOutput()
	out.format = "json"
	var buf bytes.Buffer
	failed, err := diagnose(context.Background(), &buf, "/proj", true, driver.Options{Fs: fsys}, out)
	require.NoError(t, err)
	assert.False(t, failed)
	assert.Contains(t, buf.String(), `"count": 0`)
}

func TestApplySeverityFlags(t *testing.T) {
	build := func() *diag.Bag {
		bag := diag.NewBag(0)
		bag.Add(diag.New(diag.DevGuardMissing, source.Span{File: 1, Start: 0, End: 1}))
		bag.Add(diag.New(diag.ConfigResourceMissing, source.NoSpan, "appsettings.json"))
		return bag
	}

	bag := build()
	applySeverityFlags(bag, true, false)
	require.Equal(t, 1, bag.Len())
	assert.Equal(t, diag.ConfigResourceMissing, bag.Items()[0].Code)

	bag = build()
	applySeverityFlags(bag, true, true)
	require.Equal(t, 2, bag.Len())
	for _, d := range bag.Items() {
		assert.Equal(t, diag.SevError, d.Severity)
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, "on": uiModeOn, " off ": uiModeOff} {
		got, err := readUIMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := readUIMode("sometimes")
	assert.Error(t, err)
	assert.False(t, shouldUseTUI(uiModeOff, "pretty"))
	assert.True(t, shouldUseTUI(uiModeOn, "json"))
}

func TestWriteDefaultConfig(t *testing.T) {
	fsys := afero.NewMemMapFs()
	path, err := writeDefaultConfig(fsys, "/proj")
	require.NoError(t, err)
	assert.Equal(t, "/proj/efguard.toml", path)

	cfg, err := config.Load(fsys, path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	_, err = writeDefaultConfig(fsys, "/proj")
	assert.ErrorContains(t, err, "already initialized")
}
