// Package render walks a parsed template and resolves each directive through
// a Provider.
package render

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-curly/pkg/curlyerr"
	"github.com/goliatone/go-curly/pkg/format"
	"github.com/goliatone/go-curly/pkg/provider"
	"github.com/goliatone/go-curly/pkg/syntax"
)

// Plan is a template ready to render: its nodes plus one compiled context per
// directive, in document order. A Plan is never mutated after Compile and
// may be executed concurrently with different providers.
type Plan struct {
	nodes    []syntax.Node
	contexts []format.Context
	logger   logrus.FieldLogger
}

// Compile builds the formatting context of every directive in nodes. The
// first invalid directive aborts compilation.
func Compile(nodes []syntax.Node, options ...Option) (*Plan, error) {
	cfg := newConfig(options)
	directives := syntax.Directives(nodes)
	contexts := make([]format.Context, 0, len(directives))

	for _, d := range directives {
		ctx, dropped, err := format.CompileDirective(d)
		if err != nil {
			return nil, err
		}
		if len(dropped) > 0 {
			cfg.logger.WithFields(logrus.Fields{
				"segment": d.Segment(),
				"pos":     d.Pos.String(),
				"dropped": len(dropped),
			}).Debug("render: postfix flags after the first transform are ignored")
		}
		contexts = append(contexts, ctx)
	}
	cfg.logger.WithField("directives", len(contexts)).Debug("render: plan compiled")

	return &Plan{nodes: nodes, contexts: contexts, logger: cfg.logger}, nil
}

// Nodes returns the plan's AST.
func (p *Plan) Nodes() []syntax.Node {
	return append([]syntax.Node(nil), p.nodes...)
}

// Contexts returns the compiled context of each directive in document order.
func (p *Plan) Contexts() []format.Context {
	return append([]format.Context(nil), p.contexts...)
}

// Execute renders the plan against prov.
func (p *Plan) Execute(prov provider.Provider) (string, error) {
	return execute(p.nodes, p.contexts, prov, p.logger)
}

// Render walks nodes with precompiled contexts, one per directive in document
// order. Text is copied verbatim, escaped characters are written bare and
// directives are resolved through prov with their post transform applied to
// the resolved string. The first error aborts the render and no partial
// output is returned.
func Render(nodes []syntax.Node, contexts []format.Context, prov provider.Provider, options ...Option) (string, error) {
	cfg := newConfig(options)
	if n := len(syntax.Directives(nodes)); n != len(contexts) {
		return "", curlyerr.Internalf("render: %d directives but %d formatting contexts", n, len(contexts))
	}
	return execute(nodes, contexts, prov, cfg.logger)
}

func execute(nodes []syntax.Node, contexts []format.Context, prov provider.Provider, logger logrus.FieldLogger) (string, error) {
	if prov == nil {
		return "", curlyerr.Internalf("render: provider is required")
	}

	var out strings.Builder
	next := 0
	for _, n := range nodes {
		switch node := n.(type) {
		case syntax.Text:
			out.WriteString(string(node))
		case syntax.Escaped:
			out.WriteRune(rune(node))
		case *syntax.Directive:
			ctx := contexts[next]
			next++

			value, err := prov.Provide(ctx, node.Specifier)
			if err != nil {
				logger.WithFields(logrus.Fields{
					"key": node.Specifier,
					"row": node.Pos.Row + 1,
					"col": node.Pos.Col + 1,
				}).WithError(err).Debug("render: directive failed")
				return "", format.Anchor(err, node)
			}
			value = ctx.ApplyPost(value)
			logger.WithFields(logrus.Fields{
				"key": node.Specifier,
				"row": node.Pos.Row + 1,
				"col": node.Pos.Col + 1,
			}).Debug("render: directive resolved")
			out.WriteString(value)
		default:
			return "", curlyerr.Internalf("render: unexpected node %T", n)
		}
	}
	return out.String(), nil
}
