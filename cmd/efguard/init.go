package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"efguard/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a default efguard.toml",
	Long: `Init writes the built-in policy as efguard.toml into [dir] (the current
directory when omitted). An existing policy file is never overwritten.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	path, err := writeDefaultConfig(afero.NewOsFs(), target)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", path)
	return nil
}

func writeDefaultConfig(fsys afero.Fs, dir string) (string, error) {
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory %q: %w", dir, err)
	}
	path := filepath.Join(dir, config.FileNames[0])
	for _, name := range config.FileNames {
		existing := filepath.Join(dir, name)
		if _, err := fsys.Stat(existing); err == nil {
			return "", fmt.Errorf("policy already initialized: %s exists", existing)
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
	}

	f, err := fsys.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := config.WriteDefault(f); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, f.Close()
}
