package ui

import (
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"efguard/internal/driver"
)

func feed(m tea.Model, events ...driver.Event) tea.Model {
	for _, ev := range events {
		m, _ = m.Update(eventMsg(ev))
	}
	return m
}

func TestProgressModelTracksFiles(t *testing.T) {
	m := NewProgressModel("efguard diag", []string{"A.cs", "B.cs"}, nil)
	m = feed(m,
		driver.Event{File: "A.cs", Stage: driver.StageParse, Status: driver.StatusWorking},
		driver.Event{File: "B.cs", Stage: driver.StageAnalyze, Status: driver.StatusDone},
		driver.Event{File: "unknown.cs", Stage: driver.StageLoad, Status: driver.StatusError},
	)
	view := m.View()
	if !strings.Contains(view, "(1/2)") {
		t.Errorf("expected 1 of 2 finished:\n%s", view)
	}
	if !strings.Contains(view, "parsing") || !strings.Contains(view, "done") {
		t.Errorf("expected per-file statuses:\n%s", view)
	}

	pm := m.(*progressModel)
	if got := pm.percent(); math.Abs(got-0.7) > 1e-9 {
		t.Errorf("percent = %v, want 0.7", got)
	}

	m, cmd := m.Update(doneMsg{})
	if cmd == nil || !strings.HasPrefix(stripANSI(m.View()), "done: ") {
		t.Errorf("done message must quit and mark the view:\n%s", m.View())
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("src/Data/Migrations/Program.cs", 12); got != "src/Data/..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("short.cs", 12); got != "short.cs" {
		t.Errorf("truncate = %q", got)
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	skip := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			skip = true
		case skip && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
			skip = false
		case !skip:
			b.WriteRune(r)
		}
	}
	return b.String()
}
