package diagfmt

import (
	"fmt"
	"io"

	"efguard/internal/diag"
	"efguard/internal/source"
)

// Short prints one line per diagnostic, grep- and editor-friendly:
//
//	<path>:<line>:<col>: <severity>: <CODE>: <message>
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, mode PathMode) {
	for _, d := range bag.Items() {
		if f := fileOf(fs, d.Primary); f != nil {
			pos, _ := fs.Resolve(d.Primary)
			fmt.Fprintf(w, "%s:%d:%d: %s: %s: %s\n", formatPath(fs, f, mode), pos.Line, pos.Col,
				d.Severity.String(), d.Code.ID(), d.Message)
			continue
		}
		fmt.Fprintf(w, "%s: %s: %s\n", d.Severity.String(), d.Code.ID(), d.Message)
	}
}
