package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"efguard/internal/config"
	"efguard/internal/driver"
	"efguard/internal/observ"
)

// driverOptions builds the options shared by every command: the policy
// resolved from --config or the nearest policy file above target, and the
// global limits.
func driverOptions(cmd *cobra.Command, fsys afero.Fs, target string) (driver.Options, error) {
	configPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get timings flag: %w", err)
	}

	startDir := target
	if st, statErr := fsys.Stat(target); statErr == nil && !st.IsDir() {
		startDir = filepath.Dir(target)
	}
	if abs, absErr := filepath.Abs(startDir); absErr == nil {
		startDir = abs
	}
	cfg, loaded, err := config.Resolve(fsys, configPath, startDir)
	if err != nil {
		return driver.Options{}, err
	}
	if loaded != "" {
		logger.WithField("path", loaded).Debug("policy loaded")
	}

	opts := driver.Options{
		Fs:             fsys,
		Config:         cfg,
		MaxDiagnostics: maxDiagnostics,
		Logger:         logger,
	}
	if showTimings {
		opts.Timer = observ.NewTimer()
	}
	return opts, nil
}

func printTimings(opts driver.Options) {
	if opts.Timer == nil {
		return
	}
	fmt.Fprint(os.Stderr, opts.Timer.Summary())
}
