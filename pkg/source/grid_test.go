package source_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-curly/pkg/source"
)

func rows(g *source.Grid) []string {
	var out []string
	for i := 0; i < g.Rows(); i++ {
		row, _ := g.Row(i)
		out = append(out, row)
	}
	return out
}

func TestNewGrid_Rows(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     []string
		trailing bool
	}{
		{name: "empty", input: "", want: nil},
		{name: "single row", input: "hello", want: []string{"hello"}},
		{name: "two rows", input: "Line 1\nLine 2", want: []string{"Line 1", "Line 2"}},
		{name: "trailing newline", input: "Line 1\nLine 2\n", want: []string{"Line 1", "Line 2"}, trailing: true},
		{name: "carriage returns stripped", input: "a\r\nb\r\n", want: []string{"a", "b"}, trailing: true},
		{name: "empty middle row", input: "a\n\nb", want: []string{"a", "", "b"}},
		{name: "only newline", input: "\n", want: []string{""}, trailing: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := source.NewGrid(tt.input)
			if diff := cmp.Diff(tt.want, rows(g)); diff != "" {
				t.Fatalf("rows mismatch (-want +got):\n%s", diff)
			}
			if got := g.TrailingNewline(); got != tt.trailing {
				t.Fatalf("expected trailing newline %v, got %v", tt.trailing, got)
			}
		})
	}
}

func TestGrid_Char(t *testing.T) {
	g := source.NewGrid("ab\nçd")

	if ch, ok := g.Char(1, 0); !ok || ch != 'ç' {
		t.Fatalf("expected 'ç' at 1:0, got %q (ok=%v)", ch, ok)
	}
	if ch, ok := g.Char(1, 1); !ok || ch != 'd' {
		t.Fatalf("columns should count runes, got %q", ch)
	}
	for _, pos := range []source.Position{{Row: 2, Col: 0}, {Row: 0, Col: 2}, {Row: -1, Col: 0}} {
		if _, ok := g.Char(pos.Row, pos.Col); ok {
			t.Fatalf("expected no character at %+v", pos)
		}
	}
	if _, ok := g.Row(5); ok {
		t.Fatalf("expected missing row")
	}
}

func TestGrid_End(t *testing.T) {
	if diff := cmp.Diff(source.Position{Row: 1, Col: 3}, source.NewGrid("ab\ncde").End()); diff != "" {
		t.Fatalf("end mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(source.Position{}, source.NewGrid("").End()); diff != "" {
		t.Fatalf("empty end mismatch (-want +got):\n%s", diff)
	}
}

func TestPosition(t *testing.T) {
	if got := (source.Position{Row: 0, Col: 4}).String(); got != "1:5" {
		t.Fatalf("expected one-based 1:5, got %q", got)
	}

	base := source.Position{Row: 10, Col: 7}
	if diff := cmp.Diff(source.Position{Row: 10, Col: 9}, source.Position{Row: 0, Col: 2}.Offset(base)); diff != "" {
		t.Fatalf("first row offset mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(source.Position{Row: 12, Col: 2}, source.Position{Row: 2, Col: 2}.Offset(base)); diff != "" {
		t.Fatalf("later row offset mismatch (-want +got):\n%s", diff)
	}
}
