package config_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"efguard/internal/config"
)

func TestDefaults(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, []string{"DEBUG"}, cfg.Symbols)
	assert.Equal(t, "Migrate", cfg.MigrateShape().Method)
	assert.Equal(t, 1, cfg.LookupShape().Args)
	assert.True(t, cfg.IsSource("Startup.CS"))
	assert.False(t, cfg.IsSource("appsettings.json"))
	assert.Equal(t, "Data Source=LocalDatabase.db", cfg.Note("Db").Value)
}

func TestLoadTOMLOverridesDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := `
symbols = ["DEBUG", "LOCAL"]

[guard]
marker = "LOCAL"
development = ["DEBUG", "LOCAL"]

[settings]
anchor_prefix = "AddPooledDbContext"
`
	require.NoError(t, afero.WriteFile(fs, "/p/efguard.toml", []byte(data), 0o644))
	cfg, err := config.Load(fs, "/p/efguard.toml")
	require.NoError(t, err)
	assert.Equal(t, []string{"DEBUG", "LOCAL"}, cfg.Symbols)
	assert.Equal(t, "LOCAL", cfg.Guard.Marker)
	assert.Equal(t, []string{"RELEASE"}, cfg.Guard.Release)
	assert.Equal(t, "AddPooledDbContext", cfg.Settings.AnchorPrefix)
	assert.Equal(t, "ConnectionStrings", cfg.Settings.Section)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/p/efguard.toml", []byte("[guard]\nmarkr = \"X\"\n"), 0o644))
	_, err := config.Load(fs, "/p/efguard.toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "guard.markr")

	require.NoError(t, afero.WriteFile(fs, "/p/efguard.yaml", []byte("guard:\n  markr: X\n"), 0o644))
	_, err = config.Load(fs, "/p/efguard.yaml")
	require.Error(t, err)
}

func TestLoadYAML(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := "settings:\n  file: config.json\n  section: Databases\nsources:\n  extensions: [.cs, .csx]\n"
	require.NoError(t, afero.WriteFile(fs, "/p/efguard.yaml", []byte(data), 0o644))
	cfg, err := config.Load(fs, "/p/efguard.yaml")
	require.NoError(t, err)
	assert.Equal(t, "config.json", cfg.Settings.File)
	assert.Equal(t, "Databases", cfg.Settings.Section)
	assert.True(t, cfg.IsSource("x.csx"))
	assert.Equal(t, "DEBUG", cfg.Guard.Marker)
}

func TestLoadValidates(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/p/efguard.toml", []byte("[settings]\nargs = 0\n"), 0o644))
	_, err := config.Load(fs, "/p/efguard.toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[settings].args")
}

func TestFindWalksUp(t *testing.T) {
	fs := afero.NewMemMapFs()
	root, err := filepath.Abs("/repo")
	require.NoError(t, err)
	cfgPath := filepath.Join(root, "efguard.yaml")
	require.NoError(t, afero.WriteFile(fs, cfgPath, []byte("symbols: [DEBUG]\n"), 0o644))
	require.NoError(t, fs.MkdirAll(filepath.Join(root, "src", "app"), 0o755))

	found, err := config.Find(fs, filepath.Join(root, "src", "app"))
	require.NoError(t, err)
	assert.Equal(t, cfgPath, found)

	cfg, path, err := config.Resolve(fs, "", filepath.Join(root, "src"))
	require.NoError(t, err)
	assert.Equal(t, cfgPath, path)
	assert.Equal(t, []string{"DEBUG"}, cfg.Symbols)

	empty := afero.NewMemMapFs()
	_, err = config.Find(empty, root)
	assert.ErrorIs(t, err, config.ErrNotFound)
	cfg, path, err = config.Resolve(empty, "", root)
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, config.Default(), cfg)
}

func TestWriteDefaultRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, config.WriteDefault(&buf))

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/efguard.toml", buf.Bytes(), 0o644))
	cfg, err := config.Load(fs, "/efguard.toml")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}
