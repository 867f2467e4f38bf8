package provider

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-curly/pkg/curlyerr"
	"github.com/goliatone/go-curly/pkg/format"
)

// Document resolves keys as gjson paths into a JSON document, so a dotted
// specifier such as `user.name` walks nested objects.
type Document struct {
	raw string
}

// JSON wraps a JSON document. It fails on malformed input.
func JSON(doc []byte) (*Document, error) {
	if !gjson.ValidBytes(doc) {
		return nil, fmt.Errorf("provider: invalid JSON document")
	}
	return &Document{raw: string(doc)}, nil
}

// Provide formats the value at key. Whole numbers are formatted as
// integers so the integer flags apply to them.
func (d *Document) Provide(ctx format.Context, key string) (string, error) {
	res := gjson.Get(d.raw, key)
	if !res.Exists() {
		return "", curlyerr.InvalidKey(key)
	}
	return format.Value(resultValue(res), ctx)
}

func resultValue(res gjson.Result) any {
	switch res.Type {
	case gjson.True:
		return true
	case gjson.False:
		return false
	case gjson.Number:
		if !strings.ContainsAny(res.Raw, ".eE") {
			return res.Int()
		}
		return res.Float()
	case gjson.String:
		return res.Str
	case gjson.Null:
		return "null"
	default:
		return res.Raw
	}
}

// LoadData reads a JSON or YAML data file from fsys and returns it as a
// Document.
func LoadData(fsys afero.Fs, path string) (*Document, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("provider: read %s: %w", path, err)
	}
	return ParseData(data, path)
}

// ParseData parses JSON, falling back to YAML. source names the input in
// errors.
func ParseData(data []byte, source string) (*Document, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("provider: data %s is empty", source)
	}
	if gjson.ValidBytes(data) {
		return &Document{raw: string(data)}, nil
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("provider: parse %s: invalid JSON or YAML", source)
	}
	encoded, err := json.Marshal(normalizeYAML(doc))
	if err != nil {
		return nil, fmt.Errorf("provider: parse %s: %w", source, err)
	}
	return &Document{raw: string(encoded)}, nil
}

// normalizeYAML rewrites map keys to strings so the tree can be encoded as
// JSON.
func normalizeYAML(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = normalizeYAML(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[fmt.Sprint(k)] = normalizeYAML(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = normalizeYAML(val)
		}
		return out
	default:
		return v
	}
}
