// Package observ collects phase timings for --timings.
package observ

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Phase accumulates the time spent in one named phase across files.
type Phase struct {
	Name  string
	Dur   time.Duration
	Count int
}

// Timer aggregates phase durations. It is safe for concurrent use.
type Timer struct {
	mu     sync.Mutex
	order  []string
	phases map[string]*Phase
	start  time.Time
}

// NewTimer creates an empty Timer; wall time is measured from now.
func NewTimer() *Timer {
	return &Timer{phases: make(map[string]*Phase), start: time.Now()}
}

// Track starts timing name and returns the function that stops it.
// A nil Timer returns a no-op.
func (t *Timer) Track(name string) func() {
	if t == nil {
		return func() {}
	}
	begin := time.Now()
	return func() { t.Add(name, time.Since(begin)) }
}

// Add records d for name.
func (t *Timer) Add(name string, d time.Duration) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.phases[name]
	if !ok {
		p = &Phase{Name: name}
		t.phases[name] = p
		t.order = append(t.order, name)
	}
	p.Dur += d
	p.Count++
}

// PhaseReport is the serializable form of a phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Count      int     `json:"count"`
}

// Report is the aggregated timer state.
type Report struct {
	WallMS float64       `json:"wall_ms"`
	Phases []PhaseReport `json:"phases"`
}

// Report returns phases in first-seen order. Phase durations are summed
// across goroutines, so they may exceed the wall time.
func (t *Timer) Report() Report {
	if t == nil {
		return Report{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	report := Report{WallMS: durationToMillis(time.Since(t.start))}
	for _, name := range t.order {
		p := t.phases[name]
		report.Phases = append(report.Phases, PhaseReport{
			Name:       p.Name,
			DurationMS: durationToMillis(p.Dur),
			Count:      p.Count,
		})
	}
	return report
}

// Summary renders the report as an aligned table.
func (t *Timer) Summary() string {
	report := t.Report()
	var b strings.Builder
	b.WriteString("timings:\n")
	phases := append([]PhaseReport(nil), report.Phases...)
	sort.SliceStable(phases, func(i, j int) bool { return phases[i].DurationMS > phases[j].DurationMS })
	for _, p := range phases {
		fmt.Fprintf(&b, "  %-20s %9.2f ms  x%d\n", p.Name, p.DurationMS, p.Count)
	}
	fmt.Fprintf(&b, "  %-20s %9.2f ms\n", "wall", report.WallMS)
	return b.String()
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
