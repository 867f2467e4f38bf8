package curly

import (
	"errors"

	"github.com/goliatone/go-curly/internal/lexer"
	"github.com/goliatone/go-curly/internal/parser"
	"github.com/goliatone/go-curly/pkg/curlyerr"
	"github.com/goliatone/go-curly/pkg/format"
	"github.com/goliatone/go-curly/pkg/render"
	"github.com/goliatone/go-curly/pkg/source"
	"github.com/goliatone/go-curly/pkg/syntax"
)

// Template is a compiled template. It holds no mutable state.
type Template struct {
	source string
	grid   *source.Grid
	base   source.Position
	plan   *render.Plan
}

// Compile lexes, parses and compiles every directive of tmpl. The first
// syntax error aborts compilation.
func Compile(tmpl string, opts ...Option) (*Template, error) {
	o := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	grid := source.NewGrid(tmpl)
	t := &Template{source: tmpl, grid: grid, base: o.base}

	lexemes, err := lexer.Lex(grid, o.base.Row, o.base.Col)
	if err != nil {
		return nil, t.annotate(err)
	}
	nodes, err := parser.Parse(lexemes, 0, 0)
	if err != nil {
		return nil, t.annotate(err)
	}

	var renderOpts []render.Option
	if o.logger != nil {
		renderOpts = append(renderOpts, render.WithLogger(o.logger))
	}
	plan, err := render.Compile(nodes, renderOpts...)
	if err != nil {
		return nil, t.annotate(err)
	}
	t.plan = plan
	return t, nil
}

// MustCompile is Compile that panics on error.
func MustCompile(tmpl string, opts ...Option) *Template {
	t, err := Compile(tmpl, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// Render resolves every directive through p.
func (t *Template) Render(p Provider) (string, error) {
	out, err := t.plan.Execute(p)
	if err != nil {
		return "", t.annotate(err)
	}
	return out, nil
}

// Source returns the template text.
func (t *Template) Source() string {
	return t.source
}

// Nodes returns the parsed template.
func (t *Template) Nodes() []syntax.Node {
	return t.plan.Nodes()
}

// Directives returns the directives in document order.
func (t *Template) Directives() []*syntax.Directive {
	return syntax.Directives(t.plan.Nodes())
}

// Contexts returns the compiled context of each directive in document order.
func (t *Template) Contexts() []format.Context {
	return t.plan.Contexts()
}

// Plan exposes the compiled plan for callers that execute it directly.
func (t *Template) Plan() *render.Plan {
	return t.plan
}

// Keys returns the distinct specifiers of the template in first-use order.
func (t *Template) Keys() []string {
	seen := make(map[string]struct{})
	var keys []string
	for _, d := range t.Directives() {
		if _, ok := seen[d.Specifier]; ok {
			continue
		}
		seen[d.Specifier] = struct{}{}
		keys = append(keys, d.Specifier)
	}
	return keys
}

// annotate attaches the source row to positioned errors.
func (t *Template) annotate(err error) error {
	var e *curlyerr.Error
	if !errors.As(err, &e) || !e.HasPosition() {
		return err
	}
	row := e.Pos.Row - t.base.Row
	col := e.Pos.Col
	if row == 0 {
		col -= t.base.Col
	}
	line, ok := t.grid.Row(row)
	if !ok {
		return err
	}
	return e.WithLine(line, col)
}
