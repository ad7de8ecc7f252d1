package driver

import (
	"efguard/internal/diag"
	"efguard/internal/parser"
	"efguard/internal/source"
	"efguard/internal/syntax"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tree    *syntax.Tree
	Bag     *diag.Bag
}

// Parse builds the syntax tree of one file without running analyzers.
func Parse(path string, opts Options) (*ParseResult, error) {
	opts = opts.withDefaults()
	fs := source.NewFileSet()
	fileID, err := fs.Load(opts.Fs, path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(opts.MaxDiagnostics)
	tree := parser.ParseFile(file, parser.Options{
		Symbols:  opts.Symbols,
		Reporter: &diag.BagReporter{Bag: bag},
	})

	return &ParseResult{
		FileSet: fs,
		File:    file,
		Tree:    tree,
		Bag:     bag,
	}, nil
}
