// Package curly renders `{{prefix:key/postfix}}` templates against a
// Provider. Templates are compiled once into an immutable Template and can be
// rendered any number of times, concurrently, with different providers.
//
//	tmpl := curly.MustCompile("Hello {{name/!}}, you owe {{>8.2:amount}}")
//	out, err := tmpl.Render(curly.Values().Set("name", "ada").Set("amount", 12.5))
package curly

import (
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-curly/pkg/curlyerr"
	"github.com/goliatone/go-curly/pkg/format"
	"github.com/goliatone/go-curly/pkg/provider"
	"github.com/goliatone/go-curly/pkg/source"
)

// Provider aliases provider.Provider for callers that only import the root
// package.
type Provider = provider.Provider

// ProviderFunc aliases provider.Func.
type ProviderFunc = provider.Func

// Context aliases format.Context, the per-directive formatting state passed
// to providers.
type Context = format.Context

// Error aliases curlyerr.Error.
type Error = curlyerr.Error

// Position aliases source.Position.
type Position = source.Position

// Error kind sentinels for errors.Is.
var (
	ErrGeneric  = curlyerr.ErrGeneric
	ErrSyntax   = curlyerr.ErrSyntax
	ErrInternal = curlyerr.ErrInternal
)

// Option configures Compile.
type Option func(*options)

type options struct {
	base   source.Position
	logger logrus.FieldLogger
}

// WithBase offsets every reported position, for templates embedded in a
// larger document starting at row/col.
func WithBase(row, col int) Option {
	return func(o *options) {
		o.base = source.Position{Row: row, Col: col}
	}
}

// WithLogger traces compilation and resolution at debug level.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Values starts an ad-hoc provider. Chain Set calls to add values and
// WithDelegate to fall back to a structured provider.
func Values() *provider.Values {
	return provider.New()
}

// Format compiles tmpl and renders it once against p.
func Format(tmpl string, p Provider, opts ...Option) (string, error) {
	t, err := Compile(tmpl, opts...)
	if err != nil {
		return "", err
	}
	return t.Render(p)
}

// FormatMap renders tmpl with values taking precedence over delegate, which
// may be nil.
func FormatMap(tmpl string, values map[string]any, delegate Provider, opts ...Option) (string, error) {
	return Format(tmpl, provider.Map(values).WithDelegate(delegate), opts...)
}
