package diag

import (
	"testing"

	"efguard/internal/source"
)

func TestCodeTable(t *testing.T) {
	tests := []struct {
		code Code
		id   string
		sev  Severity
	}{
		{DevGuardMissing, "DEV-GUARD-MISSING", SevWarning},
		{ConfigResourceMissing, "CONFIG-RESOURCE-MISSING", SevError},
		{ConfigKeyMissing, "CONFIG-KEY-MISSING", SevError},
		{LexUnterminatedString, "LEX1002", SevError},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.id {
			t.Errorf("ID(%d) = %q, want %q", tt.code, got, tt.id)
		}
		if got := tt.code.DefaultSeverity(); got != tt.sev {
			t.Errorf("DefaultSeverity(%s) = %s, want %s", tt.id, got, tt.sev)
		}
		back, ok := LookupCode(tt.id)
		if !ok || back != tt.code {
			t.Errorf("LookupCode(%q) = %d, %v", tt.id, back, ok)
		}
	}
}

func TestNewRendersTemplate(t *testing.T) {
	sp := source.Span{File: 0, Start: 10, End: 20}
	d := New(ConfigKeyMissing, sp, "appsettings.json", "SampleDatabase")
	want := "The appsettings.json file does not contain a database connection string for connection 'SampleDatabase'"
	if d.Message != want {
		t.Errorf("Message = %q", d.Message)
	}
	if d.Severity != SevError || d.Arg(1) != "SampleDatabase" || d.Arg(5) != "" {
		t.Errorf("unexpected diagnostic %+v", d)
	}

	doc := New(ConfigResourceMissing, source.NoSpan, "appsettings.json")
	if doc.HasLocation() {
		t.Error("document-level diagnostic must have no location")
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(&BagReporter{Bag: bag})
	for range 3 {
		Report(r, ConfigResourceMissing, source.NoSpan, "appsettings.json").Emit()
	}
	Report(r, DevGuardMissing, source.Span{Start: 1, End: 2}).Emit()
	if bag.Len() != 2 {
		t.Fatalf("expected 2 diagnostics after dedup, got %d", bag.Len())
	}
}

func TestBagSortAndLimit(t *testing.T) {
	bag := NewBag(3)
	bag.Add(New(DevGuardMissing, source.Span{Start: 50, End: 57}))
	bag.Add(New(ConfigKeyMissing, source.Span{Start: 10, End: 20}, "a", "k"))
	bag.Add(New(ConfigResourceMissing, source.NoSpan, "a"))
	if bag.Add(New(DevGuardMissing, source.Span{Start: 1, End: 2})) {
		t.Error("bag must refuse diagnostics beyond its limit")
	}
	bag.Sort()
	items := bag.Items()
	if items[0].Code != ConfigResourceMissing || items[1].Code != ConfigKeyMissing || items[2].Code != DevGuardMissing {
		t.Errorf("unexpected order: %v, %v, %v", items[0].Code, items[1].Code, items[2].Code)
	}
	if !bag.HasErrors() || !bag.HasWarnings() {
		t.Error("HasErrors/HasWarnings must be true")
	}
	bag.Filter(func(d Diagnostic) bool { return d.Severity < SevError })
	if bag.Len() != 1 || bag.HasErrors() {
		t.Errorf("Filter left %d diagnostics", bag.Len())
	}
}
