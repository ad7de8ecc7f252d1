package driver

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"efguard/internal/analysis"
	"efguard/internal/diag"
	"efguard/internal/parser"
	"efguard/internal/settings"
	"efguard/internal/source"
	"efguard/internal/syntax"
)

// Result is the outcome of one per-file pass.
type Result struct {
	Path   string
	FileID source.FileID
	// Tree is nil when the file failed to load or the result came from the
	// cache.
	Tree     *syntax.Tree
	Settings *settings.Document
	Bag      *diag.Bag
	Cached   bool
}

// AnalyzeFile runs one complete pass over a single source file.
func AnalyzeFile(ctx context.Context, path string, opts Options) (*source.FileSet, *Result, error) {
	opts = opts.withDefaults()
	fileSet := source.NewFileSetWithBase(filepath.Dir(path))
	candidates := opts.Settings
	if len(candidates) == 0 {
		var err error
		candidates, err = siblings(opts.Fs, filepath.Dir(path))
		if err != nil {
			return fileSet, nil, err
		}
	}
	doc := settings.Find(opts.Fs, candidates, opts.Config.Settings.File)
	res := analyzeOne(ctx, fileSet, path, doc, opts)
	return fileSet, res, ctx.Err()
}

// AnalyzeText runs a pass over an in-memory document. The file is
// registered as virtual so fixes never write it back.
func AnalyzeText(fileSet *source.FileSet, name string, text []byte, doc *settings.Document, opts Options) *Result {
	opts = opts.withDefaults()
	id := fileSet.AddVirtual(name, text)
	return pass(fileSet.Get(id), doc, opts)
}

func analyzeOne(ctx context.Context, fileSet *source.FileSet, path string, doc *settings.Document, opts Options) *Result {
	log := opts.Logger.WithField("file", path)
	if err := ctx.Err(); err != nil {
		return &Result{Path: path, Bag: diag.NewBag(opts.MaxDiagnostics)}
	}

	started := time.Now()
	emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusWorking})
	stop := opts.Timer.Track("load")
	id, err := fileSet.Load(opts.Fs, path)
	stop()
	if err != nil {
		log.WithError(err).Warn("load failed")
		bag := diag.NewBag(opts.MaxDiagnostics)
		bag.Add(diag.New(diag.IOLoadFileError, source.NoSpan, path, err.Error()))
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: err})
		return &Result{Path: path, Bag: bag}
	}
	file := fileSet.Get(id)

	var key Digest
	if opts.Cache != nil {
		key, err = cacheKey(file, doc, opts)
		if err != nil {
			log.WithError(err).Debug("cache key")
		} else if res, ok := loadCached(opts.Cache, key, file, doc, opts, log); ok {
			emit(opts.Progress, Event{File: path, Stage: StageAnalyze, Status: StatusDone, Elapsed: time.Since(started)})
			return res
		}
	}

	res := pass(file, doc, opts)
	if opts.Cache != nil && key != (Digest{}) {
		if err := opts.Cache.Put(key, toPayload(res)); err != nil {
			log.WithError(err).Debug("cache write failed")
		}
	}
	log.WithFields(logrus.Fields{
		"diagnostics": res.Bag.Len(),
		"settings":    settingsPath(doc),
		"elapsed":     time.Since(started),
	}).Debug("pass complete")
	status := StatusDone
	if res.Bag.HasErrors() {
		status = StatusError
	}
	emit(opts.Progress, Event{File: path, Stage: StageAnalyze, Status: status, Elapsed: time.Since(started)})
	return res
}

// pass parses file and runs the analyzers; lexer diagnostics and findings
// share one bag.
func pass(file *source.File, doc *settings.Document, opts Options) *Result {
	bag := diag.NewBag(opts.MaxDiagnostics)
	reporter := &diag.BagReporter{Bag: bag}

	emit(opts.Progress, Event{File: file.Path, Stage: StageParse, Status: StatusWorking})
	stop := opts.Timer.Track("parse")
	tree := parser.ParseFile(file, parser.Options{Symbols: opts.Symbols, Reporter: reporter})
	stop()

	emit(opts.Progress, Event{File: file.Path, Stage: StageAnalyze, Status: StatusWorking})
	stop = opts.Timer.Track("analyze")
	for _, d := range analysis.Scan(tree, doc, opts.Config) {
		bag.Add(d)
	}
	stop()
	bag.Sort()

	return &Result{Path: file.Path, FileID: file.ID, Tree: tree, Settings: doc, Bag: bag}
}

func siblings(fsys afero.Fs, dir string) ([]string, error) {
	infos, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	out := make([]string, 0, len(infos))
	for _, fi := range infos {
		if !fi.IsDir() {
			out = append(out, filepath.Join(dir, fi.Name()))
		}
	}
	return out, nil
}

func settingsPath(doc *settings.Document) string {
	if doc == nil {
		return ""
	}
	return doc.Path
}
