package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAddVirtualNormalizesContent(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("mod.js", []byte("\xEF\xBB\xBFconst a = 1;\r\nconst b = 2;\r\n"))

	f := fs.Get(id)
	if string(f.Content) != "const a = 1;\nconst b = 2;\n" {
		t.Errorf("content = %q", f.Content)
	}
	if f.Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag")
	}
	if f.Flags&FileHadBOM == 0 {
		t.Error("expected FileHadBOM flag")
	}
	if f.Flags&FileNormalizedCRLF == 0 {
		t.Error("expected FileNormalizedCRLF flag")
	}
}

func TestLoadAndGetByPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.js")
	if err := os.WriteFile(path, []byte("const x = 1;\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	f, ok := fs.GetByPath(path)
	if !ok {
		t.Fatal("GetByPath should find a loaded file")
	}
	if f.ID != id {
		t.Errorf("ID = %d, want %d", f.ID, id)
	}
	if f.Path != NormalizePath(path) {
		t.Errorf("Path = %q, want normalized %q", f.Path, NormalizePath(path))
	}
	if f.Flags&FileVirtual != 0 {
		t.Error("on-disk file should not carry FileVirtual")
	}
}

func TestLoadMissingFile(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "nope.js")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLineColAt(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("pos.js", []byte("ab\ncd\nefgh"))
	f := fs.Get(id)

	cases := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{1, LineCol{Line: 1, Col: 2}},
		{2, LineCol{Line: 1, Col: 3}}, // the newline ends line 1
		{3, LineCol{Line: 2, Col: 1}},
		{4, LineCol{Line: 2, Col: 2}},
		{6, LineCol{Line: 3, Col: 1}},
		{9, LineCol{Line: 3, Col: 4}},
	}
	for _, tc := range cases {
		if got := f.LineColAt(tc.off); got != tc.want {
			t.Errorf("LineColAt(%d) = %+v, want %+v", tc.off, got, tc.want)
		}
	}
}

func TestLineColAtSingleLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("one.js", []byte("hello")))
	if got := f.LineColAt(4); got != (LineCol{Line: 1, Col: 5}) {
		t.Errorf("LineColAt(4) = %+v", got)
	}
}

func TestResolveSpan(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("span.js", []byte("aa\nbbbb\ncc"))

	start, end := fs.Resolve(Span{File: id, Start: 3, End: 7})
	if start != (LineCol{Line: 2, Col: 1}) {
		t.Errorf("start = %+v", start)
	}
	if end != (LineCol{Line: 2, Col: 5}) {
		t.Errorf("end = %+v", end)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("lines.js", []byte("first\nsecond\nthird")))

	cases := []struct {
		line uint32
		want string
	}{
		{0, ""},
		{1, "first"},
		{2, "second"},
		{3, "third"},
		{4, ""},
	}
	for _, tc := range cases {
		if got := f.GetLine(tc.line); got != tc.want {
			t.Errorf("GetLine(%d) = %q, want %q", tc.line, got, tc.want)
		}
	}
}

func TestGetLineTrailingNewline(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("t.js", []byte("only\n")))
	if got := f.GetLine(1); got != "only" {
		t.Errorf("GetLine(1) = %q", got)
	}
	if got := f.GetLine(2); got != "" {
		t.Errorf("GetLine(2) = %q, want empty", got)
	}
}

func TestNormalizePath(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"/src/app.js", "/src/app.js"},
		{"/src/./app.js", "/src/app.js"},
		{"/src/sub/../app.js", "/src/app.js"},
	}
	for _, tc := range cases {
		if got := NormalizePath(tc.in); got != tc.want {
			t.Errorf("NormalizePath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLaterAddWinsInIndex(t *testing.T) {
	fs := NewFileSet()
	fs.AddVirtual("dup.js", []byte("old"))
	second := fs.AddVirtual("dup.js", []byte("new"))

	f, ok := fs.GetByPath("dup.js")
	if !ok {
		t.Fatal("expected file")
	}
	if f.ID != second {
		t.Errorf("index should point at the later add, got ID %d", f.ID)
	}
}
