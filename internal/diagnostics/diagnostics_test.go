package diagnostics

import (
	"strings"
	"testing"

	"github.com/zircon-lang/zircon/internal/source"
)

func TestDiagnosticError(t *testing.T) {
	d := New("main.zr", 3, 7, "invalid token: '%s'", ";")
	want := "main.zr:3:7: invalid token: ';'"
	if d.Error() != want {
		t.Errorf("got %q, want %q", d.Error(), want)
	}
	if d.EndLine != -1 || d.EndColumn != -1 {
		t.Errorf("end sentinel: got %d:%d, want -1:-1", d.EndLine, d.EndColumn)
	}
}

func TestParseColorPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    ColorPolicy
		wantErr bool
	}{
		{"auto", ColorAuto, false},
		{"", ColorAuto, false},
		{"on", ColorOn, false},
		{"always", ColorOn, false},
		{"off", ColorOff, false},
		{"never", ColorOff, false},
		{"bogus", ColorAuto, true},
	}

	for _, tt := range tests {
		got, err := ParseColorPolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColorPolicy(%q): err = %v", tt.in, err)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseColorPolicy(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestRenderWithSource(t *testing.T) {
	unit := source.NewUnit("main.zr", []byte("fn f() { 1 + ; }\n"))
	d := New("main.zr", 1, 14, "invalid token: ';'")

	var b strings.Builder
	NewRenderer(&b, ColorOff).Render(d, unit)
	got := b.String()

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), got)
	}
	if lines[0] != "main.zr:1:14: error: invalid token: ';'" {
		t.Errorf("header: got %q", lines[0])
	}
	if lines[1] != "fn f() { 1 + ; }" {
		t.Errorf("source line: got %q", lines[1])
	}
	// Caret under column 14, running to the end of the line.
	if lines[2] != strings.Repeat(" ", 13)+"^^^" {
		t.Errorf("caret line: got %q", lines[2])
	}
	if strings.Contains(got, "\x1b[") {
		t.Error("ColorOff output contains ANSI escapes")
	}
}

func TestRenderSpanWidth(t *testing.T) {
	unit := source.NewUnit("main.zr", []byte("let value = 1;\n"))
	d := New("main.zr", 1, 5, "unknown name")
	d.EndLine = 1
	d.EndColumn = 10

	var b strings.Builder
	NewRenderer(&b, ColorOff).Render(d, unit)

	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	if lines[2] != "    ^^^^^" {
		t.Errorf("caret line: got %q, want %q", lines[2], "    ^^^^^")
	}
}

func TestRenderWithoutUnit(t *testing.T) {
	d := New("main.zr", 2, 1, "oops")

	var b strings.Builder
	NewRenderer(&b, ColorOff).Render(d, nil)

	got := b.String()
	if got != "main.zr:2:1: error: oops\n" {
		t.Errorf("got %q", got)
	}
}

func TestRenderColorOn(t *testing.T) {
	unit := source.NewUnit("main.zr", []byte("x\n"))
	d := New("main.zr", 1, 1, "oops")

	var b strings.Builder
	NewRenderer(&b, ColorOn).Render(d, unit)

	got := b.String()
	if !strings.Contains(got, "\x1b[31;1m") || !strings.Contains(got, "\x1b[0m") {
		t.Errorf("ColorOn output lacks ANSI escapes: %q", got)
	}
}
