package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"efguard/internal/driver"
	"efguard/internal/fix"
	"efguard/internal/source"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file.cs|directory>",
	Short: "Apply available fixes to a source file or directory",
	Long:  "Run diagnostics and rewrite the sources with the offered fixes according to the chosen strategy.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().Bool("all", false, "apply all fixes")
	fixCmd.Flags().Bool("once", false, "apply the first available fix (default)")
	fixCmd.Flags().String("id", "", "apply fix with a specific identifier")
	fixCmd.Flags().Bool("dry-run", false, "compute fixes without writing files")
	fixCmd.Flags().StringSlice("symbols", nil, "preprocessor symbols (overrides the policy file)")
	fixCmd.Flags().StringSlice("settings", nil, "additional files searched for the settings document")
}

func runFix(cmd *cobra.Command, args []string) error {
	targetPath := args[0]

	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return fmt.Errorf("failed to get all flag: %w", err)
	}
	applyOnce, err := cmd.Flags().GetBool("once")
	if err != nil {
		return fmt.Errorf("failed to get once flag: %w", err)
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return fmt.Errorf("failed to get id flag: %w", err)
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return fmt.Errorf("failed to get dry-run flag: %w", err)
	}
	symbols, err := cmd.Flags().GetStringSlice("symbols")
	if err != nil {
		return fmt.Errorf("failed to get symbols flag: %w", err)
	}
	settingsFiles, err := cmd.Flags().GetStringSlice("settings")
	if err != nil {
		return fmt.Errorf("failed to get settings flag: %w", err)
	}

	if targetID != "" && (applyAll || applyOnce) {
		return fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnce {
		return fmt.Errorf("--all and --once are mutually exclusive")
	}

	applyOpts := fix.ApplyOptions{Mode: fix.ApplyModeOnce, TargetID: targetID, DryRun: dryRun}
	if targetID != "" {
		applyOpts.Mode = fix.ApplyModeID
	} else if applyAll {
		applyOpts.Mode = fix.ApplyModeAll
	}

	stopProfiling, err := startProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	fsys := afero.NewOsFs()
	opts, err := driverOptions(cmd, fsys, targetPath)
	if err != nil {
		return err
	}
	if len(symbols) > 0 {
		opts.Symbols = symbols
	}
	opts.Settings = settingsFiles

	info, err := fsys.Stat(targetPath)
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}
	// fix ids are offsets, unique only within one file
	if info.IsDir() && targetID != "" {
		return fmt.Errorf("fix: id can only be used with a single file")
	}

	targets, err := fixTargets(cmd.Context(), targetPath, info.IsDir(), opts)
	if err != nil {
		return err
	}
	res, applyErr := fix.Apply(fsys, opts.Config, targets, applyOpts)
	printTimings(opts)
	return reportApplyResult(cmd.OutOrStdout(), res, applyErr)
}

// fixTargets parses the sources. The disk cache is never consulted since
// fixes need the trees.
func fixTargets(ctx context.Context, path string, isDir bool, opts driver.Options) ([]fix.Target, error) {
	opts.Cache = nil
	var (
		fileSet *source.FileSet
		results []*driver.Result
		err     error
	)
	if isDir {
		fileSet, results, err = driver.AnalyzeDir(ctx, path, opts)
	} else {
		var res *driver.Result
		fileSet, res, err = driver.AnalyzeFile(ctx, path, opts)
		if res != nil {
			results = []*driver.Result{res}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("fix: diagnose failed: %w", err)
	}

	targets := make([]fix.Target, 0, len(results))
	for _, r := range results {
		if r == nil || r.Tree == nil {
			continue
		}
		targets = append(targets, fix.Target{
			File:     fileSet.Get(r.FileID),
			Tree:     r.Tree,
			Settings: r.Settings,
		})
	}
	return targets, nil
}

func reportApplyResult(w io.Writer, res *fix.ApplyResult, applyErr error) error {
	if res == nil {
		return applyErr
	}

	if len(res.Applied) > 0 {
		fmt.Fprintf(w, "Applied %d fix(es):\n", len(res.Applied))
		for _, item := range res.Applied {
			fmt.Fprintf(w, "  %s [%s] %s\n", item.Title, item.ID, item.PrimaryPath)
		}
	}
	if len(res.FileChanges) > 0 {
		fmt.Fprintln(w, "Updated files:")
		for _, change := range res.FileChanges {
			state := "written"
			if !change.Written {
				state = "not written"
			}
			fmt.Fprintf(w, "  %s (%d fixes, %s)\n", change.Path, change.Fixes, state)
		}
	}
	if len(res.Skipped) > 0 {
		fmt.Fprintln(w, "Skipped fixes:")
		for _, skip := range res.Skipped {
			id := skip.ID
			if id == "" {
				id = "(unnamed)"
			}
			if skip.Title != "" {
				fmt.Fprintf(w, "  %s [%s]: %s\n", skip.Title, id, skip.Reason)
			} else {
				fmt.Fprintf(w, "  [%s]: %s\n", id, skip.Reason)
			}
		}
	}

	if applyErr != nil {
		if errors.Is(applyErr, fix.ErrNoFixes) {
			fmt.Fprintln(w, "No applicable fixes found.")
			return nil
		}
		return applyErr
	}
	return nil
}
