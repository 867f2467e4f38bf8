// Package codegen derives Provider implementations for struct types from Go
// source. Each selected struct gets a Provide method that matches keys
// against its field names.
package codegen

import (
	"embed"
	"fmt"
	"go/ast"
	goformat "go/format"
	"go/parser"
	"go/token"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/spf13/afero"

	"github.com/goliatone/go-curly/pkg/provider"
)

// Marker selects a struct for generation when written in its doc comment.
const Marker = "//curly:provider"

//go:embed templates/*.tpl
var templatesFS embed.FS

var (
	templateOnce sync.Once
	providerTpl  *pongo2.Template
	templateErr  error
)

func providerTemplate() (*pongo2.Template, error) {
	templateOnce.Do(func() {
		set := pongo2.NewSet("curlygen", pongo2.NewFSLoader(templatesFS))
		providerTpl, templateErr = set.FromFile("templates/provider.go.tpl")
		if templateErr != nil {
			templateErr = fmt.Errorf("codegen: load template: %w", templateErr)
		}
	})
	return providerTpl, templateErr
}

// Field is one exposed struct field.
type Field struct {
	// Name is the Go field name.
	Name string
	// Key is the template key, after renaming.
	Key string
	// Quoted is Key as a Go string literal.
	Quoted string
}

// Struct is a struct type selected for generation.
type Struct struct {
	Name     string
	Receiver string
	Fields   []Field
}

// Package collects the structs found across the input files of one package.
type Package struct {
	Name    string
	Structs []Struct
}

// Config selects which structs to generate for.
type Config struct {
	// Types names the structs to generate. When empty, structs whose doc
	// comment carries Marker are selected.
	Types []string
}

// ParseFiles reads the Go files at paths from fsys and collects the selected
// structs. All files must belong to the same package.
func ParseFiles(fsys afero.Fs, paths []string, cfg Config) (*Package, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("codegen: at least one input file is required")
	}

	fset := token.NewFileSet()
	pkg := &Package{}
	found := make(map[string]bool)

	for _, path := range paths {
		src, err := afero.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("codegen: read %s: %w", path, err)
		}
		file, err := parser.ParseFile(fset, path, src, parser.ParseComments)
		if err != nil {
			return nil, fmt.Errorf("codegen: parse %s: %w", path, err)
		}
		if pkg.Name == "" {
			pkg.Name = file.Name.Name
		} else if pkg.Name != file.Name.Name {
			return nil, fmt.Errorf("codegen: %s is in package %s, expected %s", path, file.Name.Name, pkg.Name)
		}

		structs, err := collect(file, cfg)
		if err != nil {
			return nil, fmt.Errorf("codegen: %s: %w", path, err)
		}
		for _, s := range structs {
			found[s.Name] = true
		}
		pkg.Structs = append(pkg.Structs, structs...)
	}

	for _, name := range cfg.Types {
		if !found[name] {
			return nil, fmt.Errorf("codegen: struct type %s not found", name)
		}
	}
	if len(pkg.Structs) == 0 {
		return nil, fmt.Errorf("codegen: no struct types selected; pass type names or mark structs with %s", Marker)
	}

	sort.Slice(pkg.Structs, func(i, j int) bool {
		return pkg.Structs[i].Name < pkg.Structs[j].Name
	})
	return pkg, nil
}

// Parse is ParseFiles for a single in-memory source.
func Parse(filename string, src []byte, cfg Config) (*Package, error) {
	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, filename, src, 0o644); err != nil {
		return nil, fmt.Errorf("codegen: stage %s: %w", filename, err)
	}
	return ParseFiles(fsys, []string{filename}, cfg)
}

func collect(file *ast.File, cfg Config) ([]Struct, error) {
	wanted := make(map[string]bool, len(cfg.Types))
	for _, name := range cfg.Types {
		wanted[name] = true
	}

	var out []Struct
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts := spec.(*ast.TypeSpec)
			st, ok := ts.Type.(*ast.StructType)
			if !ok {
				continue
			}

			selected := wanted[ts.Name.Name]
			if len(wanted) == 0 {
				selected = hasMarker(ts.Doc) || (len(gen.Specs) == 1 && hasMarker(gen.Doc))
			}
			if !selected {
				continue
			}
			if ts.TypeParams != nil && len(ts.TypeParams.List) > 0 {
				return nil, fmt.Errorf("generic type %s is not supported", ts.Name.Name)
			}

			fields, err := structFields(st)
			if err != nil {
				return nil, err
			}
			if len(fields) == 0 {
				return nil, fmt.Errorf("%s has no providable fields", ts.Name.Name)
			}
			out = append(out, Struct{
				Name:     ts.Name.Name,
				Receiver: receiverName(ts.Name.Name),
				Fields:   fields,
			})
		}
	}
	return out, nil
}

func hasMarker(doc *ast.CommentGroup) bool {
	if doc == nil {
		return false
	}
	for _, c := range doc.List {
		if strings.TrimSpace(c.Text) == Marker {
			return true
		}
	}
	return false
}

// structFields applies the same ignore and rename rules as provider.Struct,
// except that unexported fields are kept: generated code lives in the
// declaring package.
func structFields(st *ast.StructType) ([]Field, error) {
	var out []Field
	seen := make(map[string]string)

	for _, f := range st.Fields.List {
		var tag string
		if f.Tag != nil {
			raw, err := strconv.Unquote(f.Tag.Value)
			if err != nil {
				return nil, fmt.Errorf("invalid struct tag %s: %w", f.Tag.Value, err)
			}
			tag = reflect.StructTag(raw).Get(provider.TagName)
		}

		for _, ident := range f.Names {
			name := ident.Name
			if strings.HasPrefix(name, "_") {
				continue
			}
			key, ok := provider.KeyForTag(name, tag)
			if !ok {
				continue
			}
			if prev, dup := seen[key]; dup {
				return nil, fmt.Errorf("fields %s and %s both provide key %q", prev, name, key)
			}
			seen[key] = name
			out = append(out, Field{Name: name, Key: key, Quoted: strconv.Quote(key)})
		}
	}
	return out, nil
}

func receiverName(typeName string) string {
	first := []rune(typeName)[0]
	if first == '_' {
		return "v"
	}
	return strings.ToLower(string(first))
}

// Generate renders gofmt-formatted source implementing Provider for every
// struct in pkg.
func Generate(pkg *Package) ([]byte, error) {
	tpl, err := providerTemplate()
	if err != nil {
		return nil, err
	}
	out, err := tpl.ExecuteBytes(pongo2.Context{
		"pkg":     pkg.Name,
		"structs": pkg.Structs,
	})
	if err != nil {
		return nil, fmt.Errorf("codegen: execute template: %w", err)
	}
	formatted, err := goformat.Source(out)
	if err != nil {
		return nil, fmt.Errorf("codegen: format output: %w", err)
	}
	return formatted, nil
}
