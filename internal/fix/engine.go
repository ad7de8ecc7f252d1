package fix

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/afero"

	"efguard/internal/analysis"
	"efguard/internal/config"
	"efguard/internal/diag"
	"efguard/internal/rewrite"
	"efguard/internal/settings"
	"efguard/internal/source"
	"efguard/internal/syntax"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// maxSteps bounds the re-scan loop of a single file.
const maxSteps = 256

// ApplyMode determines selection strategy for fixes.
type ApplyMode uint8

const (
	ApplyModeOnce ApplyMode = iota
	ApplyModeAll
	ApplyModeID
)

// ApplyOptions configures how fixes are selected.
type ApplyOptions struct {
	Mode     ApplyMode
	TargetID string
	// DryRun computes the fixed trees without writing them.
	DryRun bool
}

// Target is one parsed file offered to Apply.
type Target struct {
	File     *source.File
	Tree     *syntax.Tree
	Settings *settings.Document
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	ID          string
	Title       string
	Code        diag.Code
	Message     string
	PrimaryPath string
}

// SkippedFix captures a fix that was not applied, with a reason.
type SkippedFix struct {
	ID     string
	Title  string
	Reason string
}

// FileChange summarises modifications performed on a file.
type FileChange struct {
	Path    string
	Fixes   int
	Written bool
	// Tree is the final tree; for virtual files it is the only output.
	Tree *syntax.Tree
}

// ApplyResult aggregates applied fixes, skipped ones, and file changes.
type ApplyResult struct {
	Applied     []AppliedFix
	Skipped     []SkippedFix
	FileChanges []FileChange
}

// ID is the stable identifier of the fix offered for d: `<code>-<offset>`.
// Document-level diagnostics have no fix and no ID.
func ID(d diag.Diagnostic) string {
	if !d.HasLocation() {
		return ""
	}
	return fmt.Sprintf("%s-%d", d.Code.ID(), d.Primary.Start)
}

// Apply runs the fix loop over every target. Each step re-scans the
// current tree and applies one fix, so later fixes always see the edits
// of earlier ones. Changed files are written through fsys unless they are
// virtual or opts.DryRun is set.
func Apply(fsys afero.Fs, cfg *config.Config, targets []Target, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{
		Applied:     make([]AppliedFix, 0),
		Skipped:     make([]SkippedFix, 0),
		FileChanges: make([]FileChange, 0),
	}
	if cfg == nil {
		cfg = config.Default()
	}
	found := opts.Mode != ApplyModeID

	for _, t := range targets {
		if t.Tree == nil || t.File == nil {
			continue
		}
		if opts.Mode == ApplyModeOnce && len(result.Applied) > 0 {
			break
		}
		if opts.Mode == ApplyModeID && found {
			break
		}
		fixed, applied, skipped, hit := applyFile(t, cfg, opts)
		found = found || hit
		result.Applied = append(result.Applied, applied...)
		result.Skipped = append(result.Skipped, skipped...)
		if len(applied) == 0 {
			continue
		}
		change := FileChange{Path: t.File.Path, Fixes: len(applied), Tree: fixed}
		if !opts.DryRun && t.File.Flags&source.FileVirtual == 0 {
			if err := writeFile(fsys, t.File.Path, fixed.Text()); err != nil {
				result.FileChanges = append(result.FileChanges, change)
				return result, err
			}
			change.Written = true
		}
		result.FileChanges = append(result.FileChanges, change)
	}

	if !found {
		result.Skipped = append(result.Skipped, SkippedFix{ID: opts.TargetID, Reason: "fix id not found"})
	}
	sort.SliceStable(result.FileChanges, func(i, j int) bool {
		return result.FileChanges[i].Path < result.FileChanges[j].Path
	})
	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}
	return result, nil
}

// applyFile is the per-file state machine. attempted holds the IDs already
// tried, remapped through every edit so a fix that stays offered after it
// was applied (or that does not apply) is tried only once.
func applyFile(t Target, cfg *config.Config, opts ApplyOptions) (*syntax.Tree, []AppliedFix, []SkippedFix, bool) {
	tree := t.Tree
	attempted := make(map[string]bool)
	var applied []AppliedFix
	var skipped []SkippedFix
	hit := false

	for step := 0; step < maxSteps; step++ {
		cand, fixer, ok := next(analysis.Scan(tree, t.Settings, cfg), attempted, opts, step)
		if !ok {
			break
		}
		id := ID(cand)
		attempted[id] = true
		if opts.Mode == ApplyModeID {
			hit = true
		}

		out, res := fixer.Fix(tree, cand, cfg)
		if res == rewrite.Unchanged {
			skipped = append(skipped, SkippedFix{ID: id, Title: fixer.Title(), Reason: "fix does not apply"})
			if opts.Mode == ApplyModeID {
				break
			}
			continue
		}
		applied = append(applied, AppliedFix{
			ID:          id,
			Title:       fixer.Title(),
			Code:        cand.Code,
			Message:     cand.Message,
			PrimaryPath: t.File.Path,
		})
		attempted = remap(attempted, tree.Text(), out.Text())
		tree = out
		if opts.Mode != ApplyModeAll {
			break
		}
	}
	return tree, applied, skipped, hit
}

// next picks the first fixable diagnostic in document order that was not
// attempted yet. In ID mode only the first step is searched, against the
// IDs of the unedited file.
func next(ds []diag.Diagnostic, attempted map[string]bool, opts ApplyOptions, step int) (diag.Diagnostic, analysis.Fixer, bool) {
	if opts.Mode == ApplyModeID && step > 0 {
		return diag.Diagnostic{}, nil, false
	}
	for _, d := range ds {
		id := ID(d)
		if id == "" || attempted[id] {
			continue
		}
		f := analysis.FixerFor(d.Code)
		if f == nil {
			continue
		}
		if opts.Mode == ApplyModeID && id != opts.TargetID {
			continue
		}
		return d, f, true
	}
	return diag.Diagnostic{}, nil, false
}

func writeFile(fsys afero.Fs, path, text string) error {
	mode := os.FileMode(0o644)
	if info, err := fsys.Stat(path); err == nil {
		mode = info.Mode()
	}
	if err := afero.WriteFile(fsys, path, []byte(text), mode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
