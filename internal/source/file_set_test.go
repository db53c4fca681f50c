package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("main.viv", []byte("$ { print 1; }"), 0)
	id2 := fs.Add("main.viv", []byte("$ { print 2; }"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct FileIDs, got %d twice", id1)
	}

	latest, ok := fs.GetLatest("main.viv")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d, %v; want %d, true", latest, ok, id2)
	}
	if got := string(fs.Get(id1).Content); got != "$ { print 1; }" {
		t.Errorf("old version content changed: %q", got)
	}
	if fs.Get(FileID(42)) != nil {
		t.Errorf("expected nil for unknown id")
	}
}

// TestAddVirtualLineIdx проверяет правильность построения LineIdx для AddVirtual
func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.viv", []byte("a\nb\n"))
	file := fs.Get(id)

	expected := []uint32{1, 3}
	if len(file.LineIdx) != len(expected) {
		t.Fatalf("LineIdx length = %d, want %d", len(file.LineIdx), len(expected))
	}
	for i, val := range expected {
		if file.LineIdx[i] != val {
			t.Errorf("LineIdx[%d] = %d, want %d", i, file.LineIdx[i], val)
		}
	}
	if file.Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag to be set")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		in    []byte
		want  string
		flags FileFlags
	}{
		{name: "plain", in: []byte("print 1;\n"), want: "print 1;\n"},
		{name: "crlf", in: []byte("a\r\nb\r\n"), want: "a\nb\n", flags: FileNormalizedCRLF},
		{name: "lone cr kept", in: []byte("a\rb"), want: "a\rb"},
		{name: "bom", in: []byte{0xEF, 0xBB, 0xBF, 'x', '\n'}, want: "x\n", flags: FileHadBOM},
		{name: "nfc", in: []byte("\"e\u0301\""), want: "\"\u00e9\"", flags: FileNormalizedNFC},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, flags := Normalize(tt.in)
			if string(got) != tt.want {
				t.Errorf("content = %q, want %q", got, tt.want)
			}
			if flags != tt.flags {
				t.Errorf("flags = %b, want %b", flags, tt.flags)
			}
		})
	}
}

func TestResolvePositions(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("pos.viv", []byte("let x = 1;\n  set x = 2;\n"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{off: 0, want: LineCol{Line: 1, Col: 1}},
		{off: 4, want: LineCol{Line: 1, Col: 5}},
		{off: 10, want: LineCol{Line: 1, Col: 11}}, // сам '\n' принадлежит первой строке
		{off: 11, want: LineCol{Line: 2, Col: 1}},
		{off: 13, want: LineCol{Line: 2, Col: 3}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("offset %d: got %+v, want %+v", tt.off, start, tt.want)
		}
	}
}

func TestResolveCountsCharacters(t *testing.T) {
	fs := NewFileSet()
	// α занимает 2 байта, но одну колонку
	id := fs.AddVirtual("utf.viv", []byte("\"α\" x"))
	start, _ := fs.Resolve(Span{File: id, Start: 5, End: 6})
	if start != (LineCol{Line: 1, Col: 5}) {
		t.Fatalf("got %+v, want 1:5", start)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("lines.viv", []byte("first\nsecond\nthird"))
	f := fs.Get(id)

	for i, want := range []string{"", "first", "second", "third", ""} {
		if got := f.GetLine(uint32(i)); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", i, got, want)
		}
	}
}

func TestLoadNormalizesFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.viv")
	if err := os.WriteFile(path, []byte("$ {\r\n}\r\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "$ {\n}\n" {
		t.Errorf("content = %q", f.Content)
	}
	if f.Flags&FileNormalizedCRLF == 0 {
		t.Error("expected FileNormalizedCRLF")
	}
	if f.FormatPath("basename") != "crlf.viv" {
		t.Errorf("basename = %q", f.FormatPath("basename"))
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 6}
	if got := a.Cover(b); got != (Span{File: 1, Start: 2, End: 8}) {
		t.Errorf("Cover = %v", got)
	}
	if got := a.Cover(Span{File: 2, Start: 0, End: 100}); got != a {
		t.Errorf("Cover across files changed span: %v", got)
	}
}
