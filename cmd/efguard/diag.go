package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"efguard/internal/diag"
	"efguard/internal/diagfmt"
	"efguard/internal/driver"
	"efguard/internal/source"
	"efguard/internal/ui"
	"efguard/internal/version"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] <file.cs|directory>",
	Short: "Report guard and connection-string problems",
	Long: `Diag analyzes a source file or every source file under a directory and reports
auto-migration calls outside development-only guards and connection-string keys
missing from the settings document.`,
	Args: cobra.ExactArgs(1),
	RunE: runDiag,
}

func init() {
	diagCmd.Flags().String("format", "pretty", "output format (pretty|short|json|sarif)")
	diagCmd.Flags().String("path-mode", "auto", "path display (auto|absolute|relative|basename)")
	diagCmd.Flags().StringSlice("symbols", nil, "preprocessor symbols (overrides the policy file)")
	diagCmd.Flags().StringSlice("settings", nil, "additional files searched for the settings document")
	diagCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	diagCmd.Flags().Bool("no-warnings", false, "drop warnings from the output")
	diagCmd.Flags().Bool("warnings-as-errors", false, "report warnings as errors")
	diagCmd.Flags().Bool("notes", true, "show notes attached to diagnostics")
	diagCmd.Flags().Bool("fixes", true, "show available fixes")
	diagCmd.Flags().Bool("cache", false, "reuse results of unchanged files from the disk cache")
	diagCmd.Flags().Bool("watch", false, "re-run on file changes")
	diagCmd.Flags().String("ui", "auto", "progress view for directories (auto|on|off)")
}

// diagOutput holds the rendering choices of one diag invocation.
type diagOutput struct {
	format           string
	pathMode         diagfmt.PathMode
	color            bool
	notes            bool
	fixes            bool
	noWarnings       bool
	warningsAsErrors bool
	tui              bool
	args             []string
}

func runDiag(cmd *cobra.Command, args []string) error {
	target := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format = strings.ToLower(format)
	switch format {
	case "pretty", "short", "json", "sarif":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	pathModeFlag, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	pathMode, ok := diagfmt.ParsePathMode(pathModeFlag)
	if !ok {
		return fmt.Errorf("invalid --path-mode value %q", pathModeFlag)
	}
	symbols, err := cmd.Flags().GetStringSlice("symbols")
	if err != nil {
		return fmt.Errorf("failed to get symbols flag: %w", err)
	}
	settingsFiles, err := cmd.Flags().GetStringSlice("settings")
	if err != nil {
		return fmt.Errorf("failed to get settings flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	noWarnings, err := cmd.Flags().GetBool("no-warnings")
	if err != nil {
		return fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	warningsAsErrors, err := cmd.Flags().GetBool("warnings-as-errors")
	if err != nil {
		return fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	notes, err := cmd.Flags().GetBool("notes")
	if err != nil {
		return fmt.Errorf("failed to get notes flag: %w", err)
	}
	fixes, err := cmd.Flags().GetBool("fixes")
	if err != nil {
		return fmt.Errorf("failed to get fixes flag: %w", err)
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	watch, err := cmd.Flags().GetBool("watch")
	if err != nil {
		return fmt.Errorf("failed to get watch flag: %w", err)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	colored, err := useColor(cmd, os.Stdout)
	if err != nil {
		return err
	}

	stopProfiling, err := startProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	fsys := afero.NewOsFs()
	opts, err := driverOptions(cmd, fsys, target)
	if err != nil {
		return err
	}
	if len(symbols) > 0 {
		opts.Symbols = symbols
	}
	opts.Settings = settingsFiles
	opts.Jobs = jobs
	if useCache {
		cache, cacheErr := driver.OpenDiskCache("efguard")
		if cacheErr != nil {
			logger.WithError(cacheErr).Warn("disk cache disabled")
		} else {
			opts.Cache = cache
		}
	}

	st, err := fsys.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	out := diagOutput{
		format:           format,
		pathMode:         pathMode,
		color:            colored,
		notes:            notes,
		fixes:            fixes,
		noWarnings:       noWarnings,
		warningsAsErrors: warningsAsErrors,
		// the progress view would be torn by repeated watch runs
		tui:  st.IsDir() && !watch && shouldUseTUI(mode, format),
		args: os.Args[1:],
	}

	run := func(ctx context.Context) (bool, error) {
		return diagnose(ctx, os.Stdout, target, st.IsDir(), opts, out)
	}
	if watch {
		return watchAndRun(cmd.Context(), target, run)
	}

	failed, err := run(cmd.Context())
	printTimings(opts)
	if err != nil {
		return err
	}
	if failed {
		cmd.SilenceErrors = true
		return errReported
	}
	return nil
}

// diagnose runs one complete pass over target and renders the merged
// diagnostics. It reports whether any error-severity diagnostic remained.
func diagnose(ctx context.Context, w io.Writer, target string, isDir bool, opts driver.Options, out diagOutput) (bool, error) {
	var (
		fileSet *source.FileSet
		results []*driver.Result
		err     error
	)
	switch {
	case !isDir:
		var res *driver.Result
		fileSet, res, err = driver.AnalyzeFile(ctx, target, opts)
		if res != nil {
			results = []*driver.Result{res}
		}
	case out.tui:
		files, _, listErr := driver.ListFiles(opts.Fs, target, opts.Config)
		if listErr != nil {
			return false, fmt.Errorf("diagnosis failed: %w", listErr)
		}
		err = ui.Progress(os.Stderr, "efguard diag", files, func(sink driver.ProgressSink) error {
			runOpts := opts
			runOpts.Progress = sink
			var runErr error
			fileSet, results, runErr = driver.AnalyzeDir(ctx, target, runOpts)
			return runErr
		})
	default:
		fileSet, results, err = driver.AnalyzeDir(ctx, target, opts)
	}
	if err != nil {
		return false, fmt.Errorf("diagnosis failed: %w", err)
	}

	bag := mergeResults(results)
	applySeverityFlags(bag, out.noWarnings, out.warningsAsErrors)
	counts := diagfmt.Counts{Files: len(results)}
	counts.Count(bag)

	switch out.format {
	case "pretty":
		diagfmt.Pretty(w, bag, fileSet, diagfmt.PrettyOpts{
			Color:     out.color,
			Context:   2,
			PathMode:  out.pathMode,
			ShowNotes: out.notes,
			ShowFixes: out.fixes,
		})
		diagfmt.Summary(w, counts, out.color)
	case "short":
		diagfmt.Short(w, bag, fileSet, out.pathMode)
	case "json":
		err = diagfmt.JSON(w, bag, fileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         out.pathMode,
			IncludeNotes:     out.notes,
			IncludeFixes:     out.fixes,
		})
	case "sarif":
		err = diagfmt.Sarif(w, bag, fileSet, diagfmt.SarifRunMeta{
			ToolName:       "efguard",
			ToolVersion:    version.Version,
			InvocationArgs: out.args,
			PathMode:       out.pathMode,
		})
	}
	if err != nil {
		return false, err
	}
	return bag.HasErrors(), nil
}

// mergeResults collects every per-file bag into one. The settings document
// is shared by the whole run, so its document-level diagnostic is kept once.
func mergeResults(results []*driver.Result) *diag.Bag {
	bag := diag.NewBag(0)
	for _, r := range results {
		if r == nil || r.Bag == nil {
			continue
		}
		bag.Merge(r.Bag)
	}
	bag.Dedup()
	bag.Sort()
	return bag
}

func applySeverityFlags(bag *diag.Bag, noWarnings, warningsAsErrors bool) {
	if warningsAsErrors {
		bag.Transform(func(d diag.Diagnostic) diag.Diagnostic {
			if d.Severity == diag.SevWarning {
				d.Severity = diag.SevError
			}
			return d
		})
		return
	}
	if noWarnings {
		bag.Filter(func(d diag.Diagnostic) bool {
			return d.Severity != diag.SevWarning
		})
	}
}
