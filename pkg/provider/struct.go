package provider

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/goliatone/go-curly/pkg/curlyerr"
	"github.com/goliatone/go-curly/pkg/format"
)

// TagName is the struct tag read by Struct. `curly:"-"` hides a field and
// `curly:"name"` exposes it under name.
const TagName = "curly"

// Struct exposes the fields of a struct (or pointer to struct) as keys.
// Unexported fields, fields starting with `_` and fields tagged `curly:"-"`
// are skipped. Keys match case-sensitively.
func Struct(v any) (Provider, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("provider: nil %T", v)
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("provider: expected a struct, got %T", v)
	}

	fields, err := FieldKeys(rv.Type())
	if err != nil {
		return nil, fmt.Errorf("provider: %T: %w", v, err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("provider: %T has no providable fields", v)
	}
	return &structProvider{value: rv, fields: fields}, nil
}

// MustStruct is Struct that panics on error.
func MustStruct(v any) Provider {
	p, err := Struct(v)
	if err != nil {
		panic(err)
	}
	return p
}

type structProvider struct {
	value  reflect.Value
	fields map[string]int
}

func (s *structProvider) Provide(ctx format.Context, key string) (string, error) {
	idx, ok := s.fields[key]
	if !ok {
		return "", curlyerr.InvalidKey(key)
	}
	return format.Value(s.value.Field(idx).Interface(), ctx)
}

// FieldKeys maps exposed keys to field indices for a struct type. Two fields
// exposing the same key are an error.
func FieldKeys(t reflect.Type) (map[string]int, error) {
	out := make(map[string]int)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() || strings.HasPrefix(field.Name, "_") {
			continue
		}
		key, ok := KeyForTag(field.Name, field.Tag.Get(TagName))
		if !ok {
			continue
		}
		if prev, dup := out[key]; dup {
			return nil, fmt.Errorf("fields %s and %s both provide key %q", t.Field(prev).Name, field.Name, key)
		}
		out[key] = i
	}
	return out, nil
}

// KeyForTag resolves the exposed key for a field given its curly tag value.
// It reports false when the field is ignored.
func KeyForTag(name, tag string) (string, bool) {
	tag = strings.TrimSpace(tag)
	switch {
	case tag == "-":
		return "", false
	case tag != "":
		return tag, true
	default:
		return name, true
	}
}
