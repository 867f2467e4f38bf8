package curlyerr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/goliatone/go-curly/pkg/curlyerr"
	"github.com/goliatone/go-curly/pkg/source"
)

func TestError_Messages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "invalid key",
			err:  curlyerr.InvalidKey("value2"),
			want: "Error: invalid format specifier `value2`",
		},
		{
			name: "positioned syntax",
			err: curlyerr.NewSyntax("'}}'", "end of input",
				source.Position{Row: 0, Col: 7}, "{{name", source.Position{Col: 6}),
			want: "Syntax Error: expected '}}', found end of input at 1:8 (within segment '{{name' at 1:7)",
		},
		{
			name: "internal",
			err:  curlyerr.Internalf("no formatter for type %s", "chan int"),
			want: "Internal Error: no formatter for type chan int",
		},
		{
			name: "anchored message",
			err:  curlyerr.Syntaxf("bad flag").At(source.Position{Row: 1, Col: 2}, "{{x}}"),
			want: "Syntax Error: bad flag at 2:3 (within segment '{{x}}')",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestError_Kinds(t *testing.T) {
	wrapped := fmt.Errorf("render: %w", curlyerr.InvalidKey("x"))

	if !errors.Is(wrapped, curlyerr.ErrGeneric) {
		t.Fatalf("expected wrapped invalid key to match ErrGeneric")
	}
	if errors.Is(wrapped, curlyerr.ErrSyntax) {
		t.Fatalf("invalid key must not match ErrSyntax")
	}
	if !curlyerr.IsGeneric(wrapped) || curlyerr.IsInternal(wrapped) {
		t.Fatalf("kind helpers disagree for %v", wrapped)
	}
	if !curlyerr.IsSyntax(curlyerr.Syntaxf("x")) {
		t.Fatalf("expected syntax kind")
	}
	if curlyerr.KindOf(errors.New("plain")) != 0 {
		t.Fatalf("plain errors have no kind")
	}

	var e *curlyerr.Error
	if !errors.As(wrapped, &e) || e.Key != "x" {
		t.Fatalf("expected key x, got %#v", e)
	}
}

func TestError_AtKeepsExistingPosition(t *testing.T) {
	first := curlyerr.NewSyntax("a", "b", source.Position{Col: 1}, "seg", source.Position{})
	got := first.At(source.Position{Row: 9}, "other")
	if got != first {
		t.Fatalf("expected positioned error to be returned unchanged")
	}

	plain := curlyerr.Syntaxf("oops")
	anchored := plain.At(source.Position{Col: 3}, "{{a}}")
	if plain.HasPosition() {
		t.Fatalf("At must not mutate the receiver")
	}
	if !anchored.HasPosition() || anchored.Segment != "{{a}}" {
		t.Fatalf("expected anchored copy, got %#v", anchored)
	}
}
