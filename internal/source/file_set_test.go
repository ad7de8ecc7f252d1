package source

import (
	"testing"

	"github.com/spf13/afero"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("Program.cs", []byte("hello world"), 0)
	id2 := fs.Add("Program.cs", []byte("hello universe"), 0)
	if id1 != 0 || id2 != 1 {
		t.Fatalf("unexpected ids %d, %d", id1, id2)
	}
	latest, ok := fs.GetLatest("Program.cs")
	if !ok || latest != id2 {
		t.Errorf("GetLatest = %d, %v; want %d", latest, ok, id2)
	}
	if string(fs.Get(id1).Content) != "hello world" {
		t.Error("old version must stay available")
	}
}

func TestFileSetKeepsCRLF(t *testing.T) {
	fsys := afero.NewMemMapFs()
	content := []byte("var a = 1;\r\nvar b = 2;\r\n")
	if err := afero.WriteFile(fsys, "/src/Program.cs", content, 0o644); err != nil {
		t.Fatal(err)
	}
	fs := NewFileSet()
	id, err := fs.Load(fsys, "/src/Program.cs")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != string(content) {
		t.Errorf("content was modified on load: %q", f.Content)
	}
	if f.Flags&FileHasCRLF == 0 {
		t.Error("expected FileHasCRLF flag")
	}
	if got := f.GetLine(2); got != "var b = 2;" {
		t.Errorf("GetLine(2) = %q", got)
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.cs", []byte("ab\ncd\nef"))
	start, end := fs.Resolve(Span{File: id, Start: 3, End: 5})
	if start != (LineCol{Line: 2, Col: 1}) {
		t.Errorf("start = %+v", start)
	}
	if end != (LineCol{Line: 2, Col: 3}) {
		t.Errorf("end = %+v", end)
	}
	first, _ := fs.Resolve(Span{File: id, Start: 0, End: 0})
	if first != (LineCol{Line: 1, Col: 1}) {
		t.Errorf("first = %+v", first)
	}
	eol, _ := fs.Resolve(Span{File: id, Start: 2, End: 2})
	if eol != (LineCol{Line: 1, Col: 3}) {
		t.Errorf("newline position = %+v", eol)
	}
}
