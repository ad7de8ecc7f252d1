package driver

import (
	"efguard/internal/diag"
	"efguard/internal/lexer"
	"efguard/internal/source"
	"efguard/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes one file under the configured symbols.
func Tokenize(path string, opts Options) (*TokenizeResult, error) {
	opts = opts.withDefaults()
	fs := source.NewFileSet()
	fileID, err := fs.Load(opts.Fs, path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(opts.MaxDiagnostics)
	lx := lexer.New(file, lexer.Options{
		Symbols:  opts.Symbols,
		Reporter: &diag.BagReporter{Bag: bag},
	})
	tokens := lx.All()

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}
