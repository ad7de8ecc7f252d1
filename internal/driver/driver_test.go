package driver

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"efguard/internal/diag"
	"efguard/internal/observ"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const program = "var builder = WebApplication.CreateBuilder(args);\n" +
	"builder.Services.AddDbContext<SampleContext>(o =>\n" +
	"    o.UseSqlite(builder.Configuration.GetConnectionString(\"SampleDatabase\")));\n" +
	"var app = builder.Build();\n" +
	"app.Database.Migrate();\n"

const guarded = "#if DEBUG\napp.Database.Migrate();\n#endif\n"

func memProject(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for name, text := range files {
		require.NoError(t, afero.WriteFile(fsys, name, []byte(text), 0o644))
	}
	return fsys
}

func resultCodes(r *Result) []diag.Code {
	var out []diag.Code
	for _, d := range r.Bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func TestAnalyzeFileFindsSiblingSettings(t *testing.T) {
	fsys := memProject(t, map[string]string{
		"/app/Program.cs":         program,
		"/app/appsettings.json":   `{"ConnectionStrings": {"SampleDatabase": "Data Source=app.db"}}`,
		"/other/appsettings.json": `{}`,
	})
	_, res, err := AnalyzeFile(context.Background(), "/app/Program.cs", Options{Fs: fsys})
	require.NoError(t, err)
	require.NotNil(t, res.Tree)
	assert.Equal(t, program, res.Tree.Text())
	assert.Equal(t, []diag.Code{diag.DevGuardMissing}, resultCodes(res))
	require.NotNil(t, res.Settings)
	assert.Equal(t, filepath.Join("/app", "appsettings.json"), res.Settings.Path)
}

func TestAnalyzeFileWithoutSettings(t *testing.T) {
	fsys := memProject(t, map[string]string{"/app/Program.cs": program})
	_, res, err := AnalyzeFile(context.Background(), "/app/Program.cs", Options{Fs: fsys})
	require.NoError(t, err)
	assert.Equal(t, []diag.Code{diag.ConfigResourceMissing, diag.DevGuardMissing}, resultCodes(res))
	assert.True(t, res.Bag.HasErrors())
}

func TestAnalyzeFileExplicitSettings(t *testing.T) {
	fsys := memProject(t, map[string]string{
		"/app/Program.cs":          program,
		"/config/appsettings.json": `{"ConnectionStrings": {"Other": "x"}}`,
	})
	opts := Options{Fs: fsys, Settings: []string{"/config/appsettings.json"}}
	_, res, err := AnalyzeFile(context.Background(), "/app/Program.cs", opts)
	require.NoError(t, err)
	assert.Equal(t, []diag.Code{diag.ConfigKeyMissing, diag.DevGuardMissing}, resultCodes(res))
}

func TestAnalyzeFileSymbolsOverride(t *testing.T) {
	fsys := memProject(t, map[string]string{"/app/Guarded.cs": guarded})
	for _, syms := range [][]string{{"DEBUG"}, {"RELEASE"}, {}} {
		_, res, err := AnalyzeFile(context.Background(), "/app/Guarded.cs", Options{Fs: fsys, Symbols: syms})
		require.NoError(t, err)
		assert.Empty(t, res.Bag.Items(), "symbols %v", syms)
	}
}

func TestAnalyzeFileMissingSource(t *testing.T) {
	fsys := memProject(t, map[string]string{"/app/appsettings.json": `{}`})
	_, res, err := AnalyzeFile(context.Background(), "/app/Missing.cs", Options{Fs: fsys})
	require.NoError(t, err)
	assert.Nil(t, res.Tree)
	assert.Equal(t, []diag.Code{diag.IOLoadFileError}, resultCodes(res))
}

func TestAnalyzeDirParallel(t *testing.T) {
	files := map[string]string{
		"/proj/appsettings.json":       `{"ConnectionStrings": {"SampleDatabase": "x"}}`,
		"/proj/Program.cs":             program,
		"/proj/Data/Guarded.cs":        guarded,
		"/proj/bin/Debug/Generated.cs": "app.Database.Migrate();\n",
		"/proj/.git/hooks/x.cs":        "app.Database.Migrate();\n",
	}
	fsys := memProject(t, files)

	var mu sync.Mutex
	var events []Event
	sink := FuncSink(func(e Event) {
		mu.Lock()
		events = append(events, e)
		mu.Unlock()
	})
	timer := observ.NewTimer()
	fileSet, results, err := AnalyzeDir(context.Background(), "/proj", Options{
		Fs:       fsys,
		Jobs:     2,
		Progress: sink,
		Timer:    timer,
	})
	require.NoError(t, err)
	require.NotNil(t, fileSet)
	require.Len(t, results, 2)
	assert.Equal(t, filepath.Join("/proj", "Data", "Guarded.cs"), results[0].Path)
	assert.Empty(t, results[0].Bag.Items())
	assert.Equal(t, filepath.Join("/proj", "Program.cs"), results[1].Path)
	assert.Equal(t, []diag.Code{diag.DevGuardMissing}, resultCodes(results[1]))

	done := 0
	for _, e := range events {
		if e.Stage == StageAnalyze && e.Status == StatusDone {
			done++
		}
	}
	assert.Equal(t, 2, done)

	phases := map[string]int{}
	for _, p := range timer.Report().Phases {
		phases[p.Name] = p.Count
	}
	assert.Equal(t, 2, phases["parse"])
	assert.Equal(t, 2, phases["analyze"])
}

func TestAnalyzeDirEmpty(t *testing.T) {
	fsys := memProject(t, map[string]string{"/empty/readme.md": "# x\n"})
	_, results, err := AnalyzeDir(context.Background(), "/empty", Options{Fs: fsys})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestAnalyzeDirCancelled(t *testing.T) {
	fsys := memProject(t, map[string]string{"/p/A.cs": program, "/p/B.cs": program})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := AnalyzeDir(ctx, "/p", Options{Fs: fsys, Jobs: 1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDiskCacheRoundTrip(t *testing.T) {
	fsys := memProject(t, map[string]string{"/app/Program.cs": program})
	cache, err := NewDiskCache(fsys, "/cache")
	require.NoError(t, err)
	opts := Options{Fs: fsys, Cache: cache}

	_, first, err := AnalyzeFile(context.Background(), "/app/Program.cs", opts)
	require.NoError(t, err)
	assert.False(t, first.Cached)

	_, second, err := AnalyzeFile(context.Background(), "/app/Program.cs", opts)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Nil(t, second.Tree)
	require.Equal(t, first.Bag.Len(), second.Bag.Len())
	for i, d := range first.Bag.Items() {
		got := second.Bag.Items()[i]
		assert.Equal(t, d.Code, got.Code)
		assert.Equal(t, d.Message, got.Message)
		assert.Equal(t, d.Primary, got.Primary)
		assert.Equal(t, d.HasLocation(), got.HasLocation())
	}

	// a settings file changes the key
	require.NoError(t, afero.WriteFile(fsys, "/app/appsettings.json",
		[]byte(`{"ConnectionStrings": {"SampleDatabase": "x"}}`), 0o644))
	_, third, err := AnalyzeFile(context.Background(), "/app/Program.cs", opts)
	require.NoError(t, err)
	assert.False(t, third.Cached)
	assert.Equal(t, []diag.Code{diag.DevGuardMissing}, resultCodes(third))

	require.NoError(t, cache.DropAll())
	_, fourth, err := AnalyzeFile(context.Background(), "/app/Program.cs", opts)
	require.NoError(t, err)
	assert.False(t, fourth.Cached)
}

func TestTokenizeAndParse(t *testing.T) {
	fsys := memProject(t, map[string]string{"/a.cs": guarded})
	tok, err := Tokenize("/a.cs", Options{Fs: fsys})
	require.NoError(t, err)
	require.NotEmpty(t, tok.Tokens)

	parsed, err := Parse("/a.cs", Options{Fs: fsys})
	require.NoError(t, err)
	assert.Equal(t, guarded, parsed.Tree.Text())

	_, err = Parse("/missing.cs", Options{Fs: fsys})
	assert.Error(t, err)
}
