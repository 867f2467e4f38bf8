// Package provider implements the resolution protocol: a Provider maps a
// directive key to its formatted string under a formatting context.
package provider

import (
	"github.com/goliatone/go-curly/pkg/curlyerr"
	"github.com/goliatone/go-curly/pkg/format"
)

// Provider resolves key under ctx. Unknown keys return a Generic
// *curlyerr.Error naming the key.
type Provider interface {
	Provide(ctx format.Context, key string) (string, error)
}

// Func adapts a function to Provider.
type Func func(ctx format.Context, key string) (string, error)

// Provide calls f.
func (f Func) Provide(ctx format.Context, key string) (string, error) {
	return f(ctx, key)
}

// Values is an ad-hoc set of named values with an optional delegate
// consulted for keys it does not define. Own values win on collisions.
// The zero value is empty and ready to use.
type Values struct {
	values   map[string]any
	keys     []string
	delegate Provider
}

// New returns an empty Values.
func New() *Values {
	return &Values{values: make(map[string]any)}
}

// Set stores value under key, replacing any earlier value.
func (v *Values) Set(key string, value any) *Values {
	if v.values == nil {
		v.values = make(map[string]any)
	}
	if _, exists := v.values[key]; !exists {
		v.keys = append(v.keys, key)
	}
	v.values[key] = value
	return v
}

// SetAll stores every entry of values.
func (v *Values) SetAll(values map[string]any) *Values {
	for key, value := range values {
		v.Set(key, value)
	}
	return v
}

// WithDelegate sets the provider consulted for unmatched keys.
func (v *Values) WithDelegate(delegate Provider) *Values {
	v.delegate = delegate
	return v
}

// Keys returns the defined keys in insertion order.
func (v *Values) Keys() []string {
	return append([]string(nil), v.keys...)
}

// Provide formats the value stored under key, or forwards to the delegate.
func (v *Values) Provide(ctx format.Context, key string) (string, error) {
	if value, ok := v.values[key]; ok {
		return format.Value(value, ctx)
	}
	if v.delegate != nil {
		return v.delegate.Provide(ctx, key)
	}
	return "", curlyerr.InvalidKey(key)
}

// Map wraps a plain map without delegation.
func Map(values map[string]any) *Values {
	return New().SetAll(values)
}

// Chain tries each provider in order. Only Generic errors move on to the
// next provider; any other error stops the chain.
func Chain(providers ...Provider) Provider {
	return chain(providers)
}

type chain []Provider

func (c chain) Provide(ctx format.Context, key string) (string, error) {
	for _, p := range c {
		if p == nil {
			continue
		}
		out, err := p.Provide(ctx, key)
		if err == nil {
			return out, nil
		}
		if !curlyerr.IsGeneric(err) {
			return "", err
		}
	}
	return "", curlyerr.InvalidKey(key)
}
