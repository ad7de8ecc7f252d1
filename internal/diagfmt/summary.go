package diagfmt

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"efguard/internal/diag"
)

// Counts tallies a run.
type Counts struct {
	Files    int
	Errors   int
	Warnings int
	Infos    int
}

// Count adds the diagnostics of bag.
func (c *Counts) Count(bag *diag.Bag) {
	for _, d := range bag.Items() {
		switch {
		case d.Severity >= diag.SevError:
			c.Errors++
		case d.Severity == diag.SevWarning:
			c.Warnings++
		default:
			c.Infos++
		}
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// Summary prints the closing line of a pretty run.
func Summary(w io.Writer, c Counts, colored bool) {
	errs := plural(c.Errors, "error")
	warns := plural(c.Warnings, "warning")
	files := plural(c.Files, "file")
	if colored {
		bold := lipgloss.NewStyle().Bold(true)
		if c.Errors > 0 {
			errs = bold.Foreground(lipgloss.Color("1")).Render(errs)
		}
		if c.Warnings > 0 {
			warns = bold.Foreground(lipgloss.Color("3")).Render(warns)
		}
		if c.Errors == 0 && c.Warnings == 0 {
			fmt.Fprintln(w, bold.Foreground(lipgloss.Color("2")).Render("no problems found")+" in "+files)
			return
		}
	}
	fmt.Fprintf(w, "%s, %s in %s\n", errs, warns, files)
}
