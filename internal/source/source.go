// Package source tracks the source units known to a compilation and the
// line-offset tables used to look up the text of a 1-based line.
package source

import (
	"fmt"
	"os"
)

// Unit is a single source file participating in a compilation. The parser
// borrows it read-only; AST nodes record their owning unit for diagnostics.
type Unit struct {
	Path        string
	Code        []byte
	LineOffsets []int // byte offset of the start of each line, LineOffsets[0] == 0
}

// NewUnit builds a unit over code and computes its line-offset table.
func NewUnit(path string, code []byte) *Unit {
	u := &Unit{
		Path:        path,
		Code:        code,
		LineOffsets: computeLineOffsets(code),
	}
	return u
}

// Load reads path from disk and builds a unit over its contents.
func Load(path string) (*Unit, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source file: %w", err)
	}
	return NewUnit(path, code), nil
}

// LineCount returns the number of lines in the unit.
func (u *Unit) LineCount() int {
	return len(u.LineOffsets)
}

// Line returns the text of the 1-based line number, without its trailing
// newline. Out-of-range lines yield an empty slice.
func (u *Unit) Line(line int) []byte {
	if line < 1 || line > len(u.LineOffsets) {
		return nil
	}
	start := u.LineOffsets[line-1]
	end := len(u.Code)
	if line < len(u.LineOffsets) {
		end = u.LineOffsets[line] - 1
	}
	if end > 0 && end <= len(u.Code) && end > start && u.Code[end-1] == '\r' {
		end--
	}
	if start > end {
		start = end
	}
	return u.Code[start:end]
}

func computeLineOffsets(code []byte) []int {
	offsets := []int{0}
	for i, c := range code {
		if c == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}
