package observ

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTimerAggregates(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Add("parse", time.Millisecond)
		}()
	}
	wg.Wait()
	tm.Add("analyze", 2*time.Millisecond)

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(r.Phases))
	}
	if r.Phases[0].Name != "parse" || r.Phases[0].Count != 8 {
		t.Errorf("unexpected parse phase %+v", r.Phases[0])
	}
	if r.Phases[0].DurationMS != 8 {
		t.Errorf("parse duration = %v, want 8", r.Phases[0].DurationMS)
	}
	if !strings.Contains(tm.Summary(), "analyze") {
		t.Errorf("summary misses analyze:\n%s", tm.Summary())
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.Track("x")()
	if len(tm.Report().Phases) != 0 {
		t.Fatal("nil timer must report nothing")
	}
}
