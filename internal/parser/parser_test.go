package parser_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-curly/internal/lexer"
	"github.com/goliatone/go-curly/internal/parser"
	"github.com/goliatone/go-curly/pkg/curlyerr"
	"github.com/goliatone/go-curly/pkg/source"
	"github.com/goliatone/go-curly/pkg/syntax"
)

func parse(t *testing.T, input string) ([]syntax.Node, error) {
	t.Helper()
	lexemes, err := lexer.String(input)
	if err != nil {
		t.Fatalf("lex %q: %v", input, err)
	}
	return parser.Parse(lexemes, 0, 0)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []syntax.Node
	}{
		{
			name:  "text and directive",
			input: "Hello {{name}}!",
			want: []syntax.Node{
				syntax.Text("Hello "),
				&syntax.Directive{Specifier: "name", Pos: source.Position{Col: 6}},
				syntax.Text("!"),
			},
		},
		{
			name:  "full directive",
			input: "{{>8:n/!}}",
			want: []syntax.Node{
				&syntax.Directive{Prefix: ">8", HasPrefix: true, Specifier: "n", Postfix: "!", HasPostfix: true},
			},
		},
		{
			name:  "empty prefix and postfix",
			input: "{{:n/}}",
			want: []syntax.Node{
				&syntax.Directive{HasPrefix: true, Specifier: "n", HasPostfix: true},
			},
		},
		{
			name:  "separators outside directives are text",
			input: "a:b/c",
			want:  []syntax.Node{syntax.Text("a:b/c")},
		},
		{
			name:  "escaped braces",
			input: `\{\{`,
			want:  []syntax.Node{syntax.Escaped('{'), syntax.Escaped('{')},
		},
		{
			name:  "escaped backslash between text",
			input: `a\\b`,
			want:  []syntax.Node{syntax.Text("a"), syntax.Escaped('\\'), syntax.Text("b")},
		},
		{
			name:  "escape inside prefix",
			input: `{{\{^5:n}}`,
			want: []syntax.Node{
				&syntax.Directive{Prefix: "{^5", HasPrefix: true, Specifier: "n"},
			},
		},
		{
			name:  "dotted specifier on second row",
			input: "x\n{{user.name}}",
			want: []syntax.Node{
				syntax.Text("x\n"),
				&syntax.Directive{Specifier: "user.name", Pos: source.Position{Row: 1}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parse(t, tt.input)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("nodes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "unterminated directive",
			input: "{{name",
			want:  "Syntax Error: expected '}}', found end of input at 1:7 (within segment '{{name' at 1:7)",
		},
		{
			name:  "stray close brace",
			input: "a } b",
			want:  `Syntax Error: expected an escaped '\}', found a single '}' at 1:3 (within segment '}' at 1:1)`,
		},
		{
			name:  "stray open brace",
			input: "{x",
			want:  `Syntax Error: expected '{{' or an escaped '\{', found a single '{' at 1:1 (within segment '{' at 1:1)`,
		},
		{
			name:  "illegal escape",
			input: `\n`,
			want:  `Syntax Error: expected one of '\', '{', '}' after '\', found 'n' at 1:2 (within segment '\n' at 1:2)`,
		},
		{
			name:  "empty specifier",
			input: "{{}}",
			want:  "Syntax Error: expected a specifier matching [A-Za-z0-9_.]+, found an empty specifier at 1:4 (within segment '{{}}' at 1:4)",
		},
		{
			name:  "invalid specifier",
			input: "{{a b}}",
			want:  `Syntax Error: expected a specifier matching [A-Za-z0-9_.]+, found "a b" at 1:7 (within segment '{{a b}}' at 1:7)`,
		},
		{
			name:  "second prefix separator",
			input: "{{a:b:c}}",
			want:  "Syntax Error: expected '/' or '}}', found ':' at 1:6 (within segment '{{a:b:' at 1:6)",
		},
		{
			name:  "second postfix separator",
			input: "{{a/b/c}}",
			want:  "Syntax Error: expected '}}', found '/' at 1:6 (within segment '{{a/b/' at 1:6)",
		},
		{
			name:  "half closed",
			input: "{{a}x",
			want:  `Syntax Error: expected '}' closing the directive, found "x" at 1:5 (within segment '{{a}x' at 1:5)`,
		},
		{
			name:  "nested open",
			input: "{{a{{b}}",
			want:  "Syntax Error: expected a specifier or '}}', found '{' at 1:4 (within segment '{{a{' at 1:4)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.input)
			if err == nil {
				t.Fatalf("expected error for %q", tt.input)
			}
			if !errors.Is(err, curlyerr.ErrSyntax) {
				t.Fatalf("expected syntax error, got %v", err)
			}
			if got := err.Error(); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestParse_BaseOffset(t *testing.T) {
	lexemes, err := lexer.String("{{x")
	if err != nil {
		t.Fatalf("lex: %v", err)
	}
	_, err = parser.Parse(lexemes, 3, 2)

	var e *curlyerr.Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *curlyerr.Error, got %v", err)
	}
	if diff := cmp.Diff(source.Position{Row: 3, Col: 5}, e.Pos); diff != "" {
		t.Fatalf("absolute position mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(source.Position{Col: 3}, e.RelPos); diff != "" {
		t.Fatalf("relative position mismatch (-want +got):\n%s", diff)
	}
}
