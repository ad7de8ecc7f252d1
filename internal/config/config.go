// Package config loads efguard.toml / efguard.yaml policy files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"efguard/internal/directive"
	"efguard/internal/match"
	"efguard/internal/rewrite"
)

// FileNames are the config files looked up, in order of preference.
var FileNames = []string{"efguard.toml", "efguard.yaml", "efguard.yml"}

// ErrNotFound is returned by Find when no config file exists up to the
// filesystem root.
var ErrNotFound = errors.New("no efguard config found")

type Config struct {
	// Symbols are the preprocessor symbols of the analyzed build.
	Symbols  []string       `toml:"symbols" yaml:"symbols"`
	Guard    GuardConfig    `toml:"guard" yaml:"guard"`
	Settings SettingsConfig `toml:"settings" yaml:"settings"`
	Sources  SourcesConfig  `toml:"sources" yaml:"sources"`
}

// GuardConfig drives the auto-migration check.
type GuardConfig struct {
	Development []string `toml:"development" yaml:"development"`
	Release     []string `toml:"release" yaml:"release"`
	// Marker is the condition written by fixes.
	Marker   string `toml:"marker" yaml:"marker"`
	Receiver string `toml:"receiver" yaml:"receiver"`
	Method   string `toml:"method" yaml:"method"`
}

// SettingsConfig drives the connection-string check.
type SettingsConfig struct {
	File         string `toml:"file" yaml:"file"`
	Section      string `toml:"section" yaml:"section"`
	Method       string `toml:"method" yaml:"method"`
	Args         int    `toml:"args" yaml:"args"`
	AnchorPrefix string `toml:"anchor_prefix" yaml:"anchor_prefix"`
	Placeholder  string `toml:"placeholder" yaml:"placeholder"`
}

type SourcesConfig struct {
	Extensions []string `toml:"extensions" yaml:"extensions"`
}

// Default returns the built-in policy.
func Default() *Config {
	return &Config{
		Symbols: []string{"DEBUG"},
		Guard: GuardConfig{
			Development: []string{"DEBUG"},
			Release:     []string{"RELEASE"},
			Marker:      "DEBUG",
			Receiver:    "Database",
			Method:      "Migrate",
		},
		Settings: SettingsConfig{
			File:         "appsettings.json",
			Section:      "ConnectionStrings",
			Method:       "GetConnectionString",
			Args:         1,
			AnchorPrefix: "AddDbContext",
			Placeholder:  "Data Source=LocalDatabase.db",
		},
		Sources: SourcesConfig{Extensions: []string{".cs"}},
	}
}

// Policy returns the directive policy of the config.
func (c *Config) Policy() directive.Policy {
	return directive.Policy{Development: c.Guard.Development, Release: c.Guard.Release}
}

// MigrateShape is the call shape of the auto-migration check.
func (c *Config) MigrateShape() match.Shape {
	return match.Shape{Receiver: c.Guard.Receiver, Method: c.Guard.Method, Args: 0}
}

// LookupShape is the call shape of the connection-string lookup.
func (c *Config) LookupShape() match.Shape {
	return match.Shape{Method: c.Settings.Method, Args: c.Settings.Args}
}

// Note builds the comment content for a missing key.
func (c *Config) Note(key string) rewrite.Note {
	return rewrite.Note{
		File:    c.Settings.File,
		Section: c.Settings.Section,
		Key:     key,
		Value:   c.Settings.Placeholder,
	}
}

// IsSource reports whether path has one of the configured extensions.
func (c *Config) IsSource(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range c.Sources.Extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// Validate rejects configs the analyzers cannot work with.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Guard.Marker) == "":
		return fmt.Errorf("[guard].marker must not be empty")
	case len(c.Guard.Development) == 0:
		return fmt.Errorf("[guard].development must list at least one marker")
	case c.Guard.Method == "":
		return fmt.Errorf("[guard].method must not be empty")
	case c.Settings.Method == "":
		return fmt.Errorf("[settings].method must not be empty")
	case c.Settings.Args < 1:
		return fmt.Errorf("[settings].args must be at least 1, got %d", c.Settings.Args)
	case c.Settings.File == "":
		return fmt.Errorf("[settings].file must not be empty")
	case len(c.Sources.Extensions) == 0:
		return fmt.Errorf("[sources].extensions must not be empty")
	}
	return nil
}

// Load reads path (TOML or YAML by extension) over the defaults.
func Load(fsys afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = decodeYAML(data, cfg)
	default:
		err = decodeTOML(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func decodeTOML(data []byte, cfg *Config) error {
	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return fmt.Errorf("failed to parse TOML: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}

// Find walks up from startDir looking for a config file.
func Find(fsys afero.Fs, startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, err := fsys.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if ok, err := afero.Exists(fsys, candidate); err != nil {
				return "", fmt.Errorf("failed to stat %q: %w", candidate, err)
			} else if ok {
				return candidate, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}

// Resolve loads explicit when set, otherwise the nearest config above
// startDir, otherwise the defaults. The returned path is empty for defaults.
func Resolve(fsys afero.Fs, explicit, startDir string) (*Config, string, error) {
	path := explicit
	if path == "" {
		found, err := Find(fsys, startDir)
		if errors.Is(err, ErrNotFound) {
			return Default(), "", nil
		}
		if err != nil {
			return nil, "", err
		}
		path = found
	}
	cfg, err := Load(fsys, path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// WriteDefault writes the default config as TOML.
func WriteDefault(w io.Writer) error {
	if _, err := io.WriteString(w, "# efguard policy\n\n"); err != nil {
		return err
	}
	return toml.NewEncoder(w).Encode(Default())
}
