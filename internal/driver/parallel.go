package driver

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"efguard/internal/config"
	"efguard/internal/settings"
	"efguard/internal/source"
)

// ListFiles walks dir and splits its regular files into analyzable sources
// and the remaining files, which are settings candidates. Hidden
// directories and bin/obj output folders are skipped.
func ListFiles(fsys afero.Fs, dir string, cfg *config.Config) (sources, others []string, err error) {
	err = afero.Walk(fsys, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != dir && skipDir(info.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if cfg.IsSource(path) {
			sources = append(sources, path)
		} else {
			others = append(others, path)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	sort.Strings(sources)
	sort.Strings(others)
	return sources, others, nil
}

func skipDir(name string) bool {
	switch name {
	case "bin", "obj", "node_modules":
		return true
	}
	return len(name) > 1 && name[0] == '.'
}

// AnalyzeDir runs independent passes over every source under dir in
// parallel. Results keep the sorted file order.
func AnalyzeDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []*Result, error) {
	opts = opts.withDefaults()
	files, others, err := ListFiles(opts.Fs, dir, opts.Config)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	candidates := opts.Settings
	if len(candidates) == 0 {
		candidates = others
	}
	doc := settings.Find(opts.Fs, candidates, opts.Config.Settings.File)
	opts.Logger.WithField("files", len(files)).WithField("settings", settingsPath(doc)).Info("analyzing directory")

	for _, f := range files {
		emit(opts.Progress, Event{File: f, Stage: StageLoad, Status: StatusQueued})
	}

	// each goroutine owns results[i]
	results := make([]*Result, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(opts.Jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = analyzeOne(gctx, fileSet, path, doc, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, compact(results), err
	}
	return fileSet, results, nil
}

func compact(results []*Result) []*Result {
	out := results[:0]
	for _, r := range results {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}
