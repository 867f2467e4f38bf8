package format

import (
	"errors"

	"github.com/goliatone/go-curly/pkg/curlyerr"
	"github.com/goliatone/go-curly/pkg/syntax"
)

// Compile builds the formatting context for one directive from its raw
// prefix, specifier and postfix text.
func Compile(prefix, specifier, postfix string) (Context, error) {
	ctx, _, err := compile(prefix, specifier, postfix)
	return ctx, err
}

// CompileDirective compiles d and anchors any syntax error at the directive.
// The returned post-flags are those discarded by the first-match-wins
// postfix policy.
func CompileDirective(d *syntax.Directive) (Context, []PostFlag, error) {
	ctx, dropped, err := compile(d.Prefix, d.Specifier, d.Postfix)
	if err != nil {
		return Context{}, nil, Anchor(err, d)
	}
	return ctx, dropped, nil
}

func compile(prefix, specifier, postfix string) (Context, []PostFlag, error) {
	pre, err := ParsePreFlags(prefix)
	if err != nil {
		return Context{}, nil, err
	}
	post, err := ParsePostFlags(postfix)
	if err != nil {
		return Context{}, nil, err
	}

	flags, custom := applyPreFlags(pre)
	selected, dropped := SelectPost(post)

	return Context{
		CustomFlags: custom,
		Flags:       flags,
		Specifier:   specifier,
		Post:        selected,
	}, dropped, nil
}

// Anchor attaches the position and text of d to an unpositioned syntax
// error. Other errors are returned unchanged.
func Anchor(err error, d *syntax.Directive) error {
	var e *curlyerr.Error
	if !errors.As(err, &e) || e.Kind != curlyerr.Syntax || e.HasPosition() {
		return err
	}
	return e.At(d.Pos, d.Segment())
}
