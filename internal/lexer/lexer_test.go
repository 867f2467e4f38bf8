package lexer_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-curly/internal/lexer"
	"github.com/goliatone/go-curly/pkg/curlyerr"
	"github.com/goliatone/go-curly/pkg/source"
	"github.com/goliatone/go-curly/pkg/syntax"
)

func at(row, col int) source.Position {
	return source.Position{Row: row, Col: col}
}

func TestString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []syntax.Lexeme
	}{
		{
			name:  "directive on second row",
			input: "String\n {{abc:spec/post}}",
			want: []syntax.Lexeme{
				syntax.Literal("String\n ", at(0, 0)),
				syntax.OpenBrace(at(1, 1)),
				syntax.OpenBrace(at(1, 2)),
				syntax.Literal("abc", at(1, 3)),
				syntax.Sep(syntax.EndPrefixes, at(1, 6)),
				syntax.Literal("spec", at(1, 7)),
				syntax.Sep(syntax.BeginPostfixes, at(1, 11)),
				syntax.Literal("post", at(1, 12)),
				syntax.CloseBrace(at(1, 16)),
				syntax.CloseBrace(at(1, 17)),
			},
		},
		{
			name:  "escapes",
			input: `a\{b\\`,
			want: []syntax.Lexeme{
				syntax.Literal("a", at(0, 0)),
				syntax.Backslash(at(0, 1)),
				syntax.EscapedChar('{', at(0, 2)),
				syntax.Literal("b", at(0, 3)),
				syntax.Backslash(at(0, 4)),
				syntax.EscapedChar('\\', at(0, 5)),
			},
		},
		{
			name:  "escape target is not validated",
			input: `\n`,
			want: []syntax.Lexeme{
				syntax.Backslash(at(0, 0)),
				syntax.EscapedChar('n', at(0, 1)),
			},
		},
		{
			name:  "trailing newline kept",
			input: "a\n",
			want:  []syntax.Lexeme{syntax.Literal("a\n", at(0, 0))},
		},
		{
			name:  "empty rows",
			input: "a\n\nb",
			want:  []syntax.Lexeme{syntax.Literal("a\n\nb", at(0, 0))},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := lexer.String(tt.input)
			if err != nil {
				t.Fatalf("lex: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("lexemes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLex_BaseOffset(t *testing.T) {
	got, err := lexer.Lex(source.NewGrid("x{\ny"), 3, 5)
	if err != nil {
		t.Fatalf("lex: %v", err)
	}
	want := []syntax.Lexeme{
		syntax.Literal("x", at(3, 5)),
		syntax.OpenBrace(at(3, 6)),
		syntax.Literal("\ny", at(3, 7)),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("lexemes mismatch (-want +got):\n%s", diff)
	}
}

func TestLex_DanglingEscape(t *testing.T) {
	_, err := lexer.String(`ab\`)
	if err == nil {
		t.Fatalf("expected error for a trailing backslash")
	}

	var e *curlyerr.Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *curlyerr.Error, got %T", err)
	}
	if e.Kind != curlyerr.Syntax {
		t.Fatalf("expected syntax error, got %s", e.Kind)
	}
	want := `Syntax Error: expected an escaped character, found end of input at 1:4 (within segment 'ab\' at 1:4)`
	if got := e.Error(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
