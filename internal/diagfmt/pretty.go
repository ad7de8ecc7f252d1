package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"efguard/internal/analysis"
	"efguard/internal/diag"
	"efguard/internal/fix"
	"efguard/internal/source"
)

type palette struct {
	err, warn, info, path, gutter, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		path:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		note:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.path, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch {
	case s >= diag.SevError:
		return p.err
	case s == diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty renders diagnostics for humans. Items are printed in bag order
// (callers sort first):
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//	  12 | app.Database.Migrate();
//	     |              ^~~~~~~
//
// Document-level diagnostics have no location and print the header only.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		sev := p.severity(d.Severity).Sprint(d.Severity.String())
		file := fileOf(fs, d.Primary)
		if file == nil {
			fmt.Fprintf(w, "%s %s: %s\n", sev, d.Code.ID(), d.Message)
		} else {
			start, _ := fs.Resolve(d.Primary)
			loc := fmt.Sprintf("%s:%d:%d", formatPath(fs, file, opts.PathMode), start.Line, start.Col)
			fmt.Fprintf(w, "%s: %s %s: %s\n", p.path.Sprint(loc), sev, d.Code.ID(), d.Message)
			writeSnippet(w, fs, file, d.Primary, opts.Context, p)
		}
		if opts.ShowNotes {
			for _, n := range d.Notes {
				if nf := fileOf(fs, n.Span); nf != nil {
					pos, _ := fs.Resolve(n.Span)
					fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", p.note.Sprint("note:"), formatPath(fs, nf, opts.PathMode), pos.Line, pos.Col, n.Msg)
				} else {
					fmt.Fprintf(w, "  %s %s\n", p.note.Sprint("note:"), n.Msg)
				}
			}
		}
		if opts.ShowFixes {
			if f := analysis.FixerFor(d.Code); f != nil && d.HasLocation() {
				fmt.Fprintf(w, "  %s %s (id=%s)\n", p.note.Sprint("fix:"), f.Title(), fix.ID(d))
			}
		}
	}
}

func fileOf(fs *source.FileSet, sp source.Span) *source.File {
	if fs == nil || !sp.IsValid() {
		return nil
	}
	return fs.Get(sp.File)
}

// writeSnippet prints context lines and the primary line with a caret
// underline. Column math uses display width so wide runes and tabs line up.
func writeSnippet(w io.Writer, fs *source.FileSet, f *source.File, sp source.Span, context int, p palette) {
	start, end := fs.Resolve(sp)
	if start.Line == 0 {
		return
	}
	first := start.Line
	if context > 0 {
		if uint32(context) >= first {
			first = 1
		} else {
			first -= uint32(context)
		}
	}
	width := len(fmt.Sprint(start.Line))
	for ln := first; ln <= start.Line; ln++ {
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", width+2, ln), f.GetLine(ln))
	}

	line := f.GetLine(start.Line)
	col := int(start.Col) - 1
	if col > len(line) {
		col = len(line)
	}
	stop := len(line)
	if end.Line == start.Line && int(end.Col)-1 <= len(line) {
		stop = int(end.Col) - 1
	}
	if stop < col {
		stop = col
	}
	pad := padFor(line[:col])
	n := runewidth.StringWidth(line[col:stop])
	if n < 1 {
		n = 1
	}
	marks := "^" + strings.Repeat("~", n-1)
	fmt.Fprintf(w, "%s %s%s\n", p.gutter.Sprintf("%*s |", width+2, ""), pad, p.caret.Sprint(marks))
}

// padFor keeps tabs and replaces everything else by spaces of equal width.
func padFor(prefix string) string {
	var b strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return b.String()
}
