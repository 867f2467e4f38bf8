package render_test

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/goliatone/go-curly/internal/lexer"
	"github.com/goliatone/go-curly/internal/parser"
	"github.com/goliatone/go-curly/pkg/curlyerr"
	"github.com/goliatone/go-curly/pkg/format"
	"github.com/goliatone/go-curly/pkg/provider"
	"github.com/goliatone/go-curly/pkg/render"
	"github.com/goliatone/go-curly/pkg/syntax"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func nodesOf(t *testing.T, input string) []syntax.Node {
	t.Helper()
	lexemes, err := lexer.String(input)
	require.NoError(t, err)
	nodes, err := parser.Parse(lexemes, 0, 0)
	require.NoError(t, err)
	return nodes
}

func compile(t *testing.T, input string, options ...render.Option) *render.Plan {
	t.Helper()
	plan, err := render.Compile(nodesOf(t, input), options...)
	require.NoError(t, err)
	return plan
}

func TestPlan_Execute(t *testing.T) {
	values := provider.New().
		Set("name", "ada").
		Set("n", 7).
		Set("flag", true).
		Set("ratio", 0.4567)

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{name: "plain text", template: "no directives here", want: "no directives here"},
		{name: "escapes resolved", template: `a \{ b \\ c \}`, want: `a { b \ c }`},
		{name: "escaped directive", template: `\{\{name\}\}`, want: "{{name}}"},
		{name: "bare directive", template: "Hello {{name}}!", want: "Hello ada!"},
		{name: "post after value", template: "[{{>6:name/!}}]", want: "[   ADA]"},
		{name: "post layout over pre layout", template: "[{{>4:n/*<8}}]", want: "[   7****]"},
		{name: "capitalize", template: "{{name/-}}", want: "Ada"},
		{name: "boolean words", template: "{{q:flag}} {{!q:flag}} {{!:flag}}", want: "yes no false"},
		{name: "precision", template: "{{.2:ratio}}", want: "0.46"},
		{name: "multi row", template: "a\n{{name}}\n", want: "a\nada\n"},
		{name: "separators as text", template: "10:30 a/b {{n}}", want: "10:30 a/b 7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := compile(t, tt.template).Execute(values)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlan_Execute_FirstErrorAborts(t *testing.T) {
	calls := 0
	counting := provider.Func(func(ctx format.Context, key string) (string, error) {
		calls++
		if key == "missing" {
			return "", curlyerr.InvalidKey(key)
		}
		return key, nil
	})

	got, err := compile(t, "{{a}} {{missing}} {{b}}").Execute(counting)

	require.Error(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 2, calls)
	assert.True(t, curlyerr.IsGeneric(err))
	assert.Equal(t, "Error: invalid format specifier `missing`", err.Error())
}

func TestPlan_Execute_AnchorsValueSyntaxErrors(t *testing.T) {
	_, err := compile(t, "x {{z:flag}}").Execute(provider.New().Set("flag", true))

	require.ErrorIs(t, err, curlyerr.ErrSyntax)
	assert.Equal(t,
		"Syntax Error: expected one of 'q', 'Q', '!' for a boolean, found 'z' in {{z:flag}} at 1:3 (within segment '{{z:flag}}')",
		err.Error())
}

func TestCompile_InvalidPrefix(t *testing.T) {
	_, err := render.Compile(nodesOf(t, "ok {{1.:v}}"))
	require.ErrorIs(t, err, curlyerr.ErrSyntax)

	var e *curlyerr.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, 3, e.Pos.Col)
}

func TestCompile_LogsDroppedPostFlags(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	plan := compile(t, "{{v/!_}}", render.WithLogger(logger))
	got, err := plan.Execute(provider.New().Set("v", "MiXed"))
	require.NoError(t, err)
	assert.Equal(t, "MIXED", got)

	var messages []string
	for _, entry := range hook.AllEntries() {
		messages = append(messages, entry.Message)
	}
	assert.Contains(t, messages, "render: postfix flags after the first transform are ignored")
	assert.Contains(t, messages, "render: directive resolved")
}

func TestRender_WithContexts(t *testing.T) {
	nodes := nodesOf(t, "<{{a}}|{{b}}>")
	contexts := []format.Context{format.NewContext("a"), format.NewContext("b")}
	contexts[1].Post = format.Post{Kind: format.PostUpper}

	got, err := render.Render(nodes, contexts, provider.New().Set("a", "x").Set("b", "y"))
	require.NoError(t, err)
	assert.Equal(t, "<x|Y>", got)

	_, err = render.Render(nodes, contexts[:1], provider.New())
	assert.ErrorIs(t, err, curlyerr.ErrInternal)

	_, err = render.Render(nodes, contexts, nil)
	assert.ErrorIs(t, err, curlyerr.ErrInternal)
	assert.EqualError(t, err, "Internal Error: render: provider is required")
}

func TestPlan_ConcurrentExecute(t *testing.T) {
	plan := compile(t, "{{>3:id}}:{{name/!}}")

	const workers = 16
	results := make([]string, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			values := provider.New().Set("id", i).Set("name", fmt.Sprintf("worker%d", i))
			results[i], errs[i] = plan.Execute(values)
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		want := fmt.Sprintf("%3d:WORKER%d", i, i)
		assert.Equal(t, want, results[i])
	}
}

func TestPlan_Accessors(t *testing.T) {
	plan := compile(t, "a {{x}} b {{4:y}}")

	contexts := plan.Contexts()
	require.Len(t, contexts, 2)
	assert.Equal(t, "{{4:y}}", contexts[1].Segment())

	nodes := plan.Nodes()
	nodes[0] = syntax.Text("mutated")
	assert.False(t, strings.Contains(fmt.Sprint(plan.Nodes()[0]), "mutated"))
}
