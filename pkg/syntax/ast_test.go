package syntax_test

import (
	"testing"

	"github.com/goliatone/go-curly/pkg/syntax"
)

func TestDirective_Segment(t *testing.T) {
	tests := []struct {
		name string
		d    syntax.Directive
		want string
	}{
		{name: "bare", d: syntax.Directive{Specifier: "name"}, want: "{{name}}"},
		{name: "prefix", d: syntax.Directive{Prefix: ">8", HasPrefix: true, Specifier: "n"}, want: "{{>8:n}}"},
		{name: "empty prefix", d: syntax.Directive{HasPrefix: true, Specifier: "n"}, want: "{{:n}}"},
		{name: "postfix", d: syntax.Directive{Specifier: "n", Postfix: "!", HasPostfix: true}, want: "{{n/!}}"},
		{name: "escaped brace in prefix", d: syntax.Directive{Prefix: "{^5", HasPrefix: true, Specifier: "n"}, want: `{{\{^5:n}}`},
		{name: "escaped backslash in postfix", d: syntax.Directive{Specifier: "n", Postfix: `\>4`, HasPostfix: true}, want: `{{n/\\>4}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.Segment(); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestIsSpecifier(t *testing.T) {
	for _, ok := range []string{"a", "value_1", "user.name", "X9"} {
		if !syntax.IsSpecifier(ok) {
			t.Fatalf("expected %q to be a specifier", ok)
		}
	}
	for _, bad := range []string{"", "a b", "a-b", "é"} {
		if syntax.IsSpecifier(bad) {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestDirectives(t *testing.T) {
	first := &syntax.Directive{Specifier: "a"}
	second := &syntax.Directive{Specifier: "b"}
	nodes := []syntax.Node{syntax.Text("x"), first, syntax.Escaped('{'), second}

	got := syntax.Directives(nodes)
	if len(got) != 2 || got[0] != first || got[1] != second {
		t.Fatalf("unexpected directives: %#v", got)
	}
}
