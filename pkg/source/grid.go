// Package source indexes raw template text by row and column so diagnostics
// can point at the exact location of a problem.
package source

import (
	"fmt"
	"strings"
)

// Position is a zero-based row/column coordinate. Columns count runes, not
// bytes.
type Position struct {
	Row int
	Col int
}

// String renders the position as a one-based "row:col" pair.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Row+1, p.Col+1)
}

// Offset returns p shifted by base. The column shift only applies to the
// first row, matching how a segment embedded mid-line is laid out.
func (p Position) Offset(base Position) Position {
	if p.Row == 0 {
		return Position{Row: base.Row, Col: base.Col + p.Col}
	}
	return Position{Row: base.Row + p.Row, Col: p.Col}
}

// Grid maps row indices to row text. Newlines are not part of any row and
// carriage returns are stripped. It is read-only once built.
type Grid struct {
	rows            [][]rune
	trailingNewline bool
}

// NewGrid indexes input. It never fails; an empty input yields a grid with
// no rows.
func NewGrid(input string) *Grid {
	g := &Grid{}
	if input == "" {
		return g
	}

	text := strings.ReplaceAll(input, "\r", "")
	if strings.HasSuffix(text, "\n") {
		g.trailingNewline = true
		text = text[:len(text)-1]
	}

	for _, line := range strings.Split(text, "\n") {
		g.rows = append(g.rows, []rune(line))
	}
	return g
}

// Rows reports how many rows the grid holds.
func (g *Grid) Rows() int {
	if g == nil {
		return 0
	}
	return len(g.rows)
}

// TrailingNewline reports whether the input ended with a newline that was
// dropped when building rows.
func (g *Grid) TrailingNewline() bool {
	return g != nil && g.trailingNewline
}

// Row returns the text of row i.
func (g *Grid) Row(i int) (string, bool) {
	if g == nil || i < 0 || i >= len(g.rows) {
		return "", false
	}
	return string(g.rows[i]), true
}

// Char returns the rune at row/col.
func (g *Grid) Char(row, col int) (rune, bool) {
	if g == nil || row < 0 || row >= len(g.rows) {
		return 0, false
	}
	line := g.rows[row]
	if col < 0 || col >= len(line) {
		return 0, false
	}
	return line[col], true
}

// RowRunes exposes row i as runes for scanners. Callers must not modify the
// returned slice.
func (g *Grid) RowRunes(i int) []rune {
	if g == nil || i < 0 || i >= len(g.rows) {
		return nil
	}
	return g.rows[i]
}

// End returns the position just past the last character of the input.
func (g *Grid) End() Position {
	if g == nil || len(g.rows) == 0 {
		return Position{}
	}
	last := len(g.rows) - 1
	return Position{Row: last, Col: len(g.rows[last])}
}
