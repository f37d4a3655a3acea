// Package diagnostics provides positioned error records for the Zircon
// compiler front end and renders them against the owning source unit with
// optional terminal coloring.
package diagnostics

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/zircon-lang/zircon/internal/source"
)

// ColorPolicy controls whether rendered diagnostics use ANSI colors.
type ColorPolicy int

const (
	// ColorAuto colors output only when the destination is a terminal.
	ColorAuto ColorPolicy = iota
	ColorOn
	ColorOff
)

// ParseColorPolicy maps a command-line value to a policy.
func ParseColorPolicy(s string) (ColorPolicy, error) {
	switch s {
	case "auto", "":
		return ColorAuto, nil
	case "on", "always":
		return ColorOn, nil
	case "off", "never":
		return ColorOff, nil
	}
	return ColorAuto, fmt.Errorf("invalid color policy: %q", s)
}

// Diagnostic is a single positioned error. Line and Column are 1-based.
// EndLine/EndColumn may be -1, meaning "to the end of the start line".
type Diagnostic struct {
	Path      string
	Line      int
	Column    int
	EndLine   int
	EndColumn int
	Message   string
}

// New builds a diagnostic at a start position with the end sentinel set.
func New(path string, line, column int, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{
		Path:      path,
		Line:      line,
		Column:    column,
		EndLine:   -1,
		EndColumn: -1,
		Message:   fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", d.Path, d.Line, d.Column, d.Message)
}

const (
	ansiRed   = "\x1b[31;1m"
	ansiBold  = "\x1b[1m"
	ansiGreen = "\x1b[32;1m"
	ansiReset = "\x1b[0m"
)

// Renderer formats diagnostics for human consumption.
type Renderer struct {
	Out   io.Writer
	Color ColorPolicy
}

// NewRenderer returns a renderer writing to out.
func NewRenderer(out io.Writer, color ColorPolicy) *Renderer {
	return &Renderer{Out: out, Color: color}
}

// colorize resolves the policy against the destination stream.
func (r *Renderer) colorize() bool {
	switch r.Color {
	case ColorOn:
		return true
	case ColorOff:
		return false
	}
	f, ok := r.Out.(*os.File)
	return ok && isTerminal(f.Fd())
}

// Render writes the diagnostic header, the offending source line from unit,
// and a caret marking the error span. unit may be nil when no source is
// available; the header alone is emitted then.
func (r *Renderer) Render(d *Diagnostic, unit *source.Unit) {
	color := r.colorize()

	var b strings.Builder
	if color {
		b.WriteString(ansiBold)
	}
	b.WriteString(fmt.Sprintf("%s:%d:%d: ", d.Path, d.Line, d.Column))
	if color {
		b.WriteString(ansiRed)
	}
	b.WriteString("error: ")
	if color {
		b.WriteString(ansiReset)
		b.WriteString(ansiBold)
	}
	b.WriteString(d.Message)
	if color {
		b.WriteString(ansiReset)
	}
	b.WriteByte('\n')

	if unit != nil {
		lineText := unit.Line(d.Line)
		if lineText != nil {
			b.Write(lineText)
			b.WriteByte('\n')

			width := 1
			if d.EndColumn >= 0 && d.EndLine == d.Line && d.EndColumn > d.Column {
				width = d.EndColumn - d.Column
			} else if d.EndColumn < 0 {
				if rest := len(lineText) - (d.Column - 1); rest > width {
					width = rest
				}
			}
			b.WriteString(strings.Repeat(" ", d.Column-1))
			if color {
				b.WriteString(ansiGreen)
			}
			b.WriteString(strings.Repeat("^", width))
			if color {
				b.WriteString(ansiReset)
			}
			b.WriteByte('\n')
		}
	}

	io.WriteString(r.Out, b.String())
}
