package testsupport

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/goliatone/go-curly/pkg/provider"
)

// LoadTemplate reads a template fixture. Testing helpers fail the test on
// error to keep table tests concise.
func LoadTemplate(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("load template: %v", err)
	}
	return string(data)
}

// MustLoadData loads a JSON or YAML data fixture as a provider.
func MustLoadData(t *testing.T, path string) *provider.Document {
	t.Helper()

	doc, err := LoadDataFromPath(path)
	if err != nil {
		t.Fatalf("load data: %v", err)
	}
	return doc
}

// LoadDataFromPath returns a data provider without requiring testing.T,
// allowing callers to wire fixtures in setup functions.
func LoadDataFromPath(path string) (*provider.Document, error) {
	if path == "" {
		return nil, errors.New("testsupport: data path is required")
	}
	doc, err := provider.LoadData(afero.NewOsFs(), path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: load data: %w", err)
	}
	return doc, nil
}

// Case pairs a template fixture with its data file and golden output, found
// by naming convention: name.tpl, name.json|name.yaml, name.golden.
type Case struct {
	Name     string
	Template string
	Data     string
	Golden   string
}

// Cases lists the template fixtures in dir in lexical order.
func Cases(t *testing.T, dir string) []Case {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join(dir, "*.tpl"))
	if err != nil {
		t.Fatalf("glob fixtures: %v", err)
	}

	var out []Case
	for _, tpl := range matches {
		base := strings.TrimSuffix(tpl, ".tpl")
		c := Case{
			Name:     filepath.Base(base),
			Template: tpl,
			Golden:   base + ".golden",
		}
		for _, ext := range []string{".json", ".yaml", ".yml"} {
			if _, err := os.Stat(base + ext); err == nil {
				c.Data = base + ext
				break
			}
		}
		out = append(out, c)
	}
	return out
}
