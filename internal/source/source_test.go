package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLineOffsets(t *testing.T) {
	tests := []struct {
		name string
		code string
		want []int
	}{
		{"empty", "", []int{0}},
		{"single line", "abc", []int{0}},
		{"trailing newline", "abc\n", []int{0, 4}},
		{"multiple lines", "a\nbb\nccc", []int{0, 2, 5}},
		{"leading newline", "\nx", []int{0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := NewUnit("test.zr", []byte(tt.code))
			if len(u.LineOffsets) != len(tt.want) {
				t.Fatalf("got %v, want %v", u.LineOffsets, tt.want)
			}
			for i := range tt.want {
				if u.LineOffsets[i] != tt.want[i] {
					t.Errorf("offset %d: got %d, want %d", i, u.LineOffsets[i], tt.want[i])
				}
			}
		})
	}
}

func TestLine(t *testing.T) {
	u := NewUnit("test.zr", []byte("first\nsecond\r\nthird"))

	tests := []struct {
		line int
		want string
	}{
		{1, "first"},
		{2, "second"}, // carriage return stripped
		{3, "third"},
		{0, ""},
		{4, ""},
	}

	for _, tt := range tests {
		if got := string(u.Line(tt.line)); got != tt.want {
			t.Errorf("Line(%d): got %q, want %q", tt.line, got, tt.want)
		}
	}

	if u.LineCount() != 3 {
		t.Errorf("LineCount: got %d, want 3", u.LineCount())
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.zr")
	if err := os.WriteFile(path, []byte("fn main() {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	u, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if u.Path != path {
		t.Errorf("path: got %q, want %q", u.Path, path)
	}
	if string(u.Line(1)) != "fn main() {}" {
		t.Errorf("line 1: got %q", u.Line(1))
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.zr"))
	if err == nil {
		t.Fatal("Load of a missing file succeeded")
	}
}
