package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	curly "github.com/goliatone/go-curly"
	"github.com/goliatone/go-curly/pkg/provider"
)

type renderCmd struct {
	root *rootCommand
	sets []string
}

func newRenderCommand(root *rootCommand) *cobra.Command {
	c := &renderCmd{root: root}
	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "render a template",
		Long: `Render a template read from a file or stdin.

Keys resolve from --set values first, then the --data document, then
environment variables when --env is given. With --interactive, keys that
remain unresolved are asked for on the terminal.`,
		Example: `  curly render greeting.tpl --set name=Ada
  echo 'Hi {{name/!}}' | curly render --data people.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: c.run,
	}
	cmd.Flags().StringArrayVar(&c.sets, "set", nil, "set a template value as `key=value` (repeatable)")
	return cmd
}

func (c *renderCmd) run(cmd *cobra.Command, args []string) error {
	gs := c.root.gs
	conf := c.root.conf

	tmpl, err := readInput(gs, inputArg(args))
	if err != nil {
		return err
	}
	p, err := c.provider(cmd)
	if err != nil {
		return err
	}

	t, err := curly.Compile(tmpl, curly.WithLogger(gs.logger))
	if err != nil {
		return err
	}
	out, err := t.Render(p)
	if err != nil {
		return err
	}

	if conf.Output.String != "" && conf.Output.String != "-" {
		if err := afero.WriteFile(gs.fs, conf.Output.String, []byte(out), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", conf.Output.String, err)
		}
		gs.logger.WithField("path", conf.Output.String).Info("output written")
		return nil
	}
	_, err = io.WriteString(gs.stdout, out)
	return err
}

// provider assembles --set values, delegating to the data document and the
// environment, then wraps the result for --html and --interactive.
func (c *renderCmd) provider(cmd *cobra.Command) (provider.Provider, error) {
	gs := c.root.gs
	conf := c.root.conf

	values := provider.New()
	for _, kv := range c.sets {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q: expected key=value", kv)
		}
		values.Set(key, value)
	}

	var fallbacks []provider.Provider
	if conf.Data.String != "" {
		doc, err := provider.LoadData(gs.fs, conf.Data.String)
		if err != nil {
			return nil, err
		}
		fallbacks = append(fallbacks, doc)
	}
	if conf.Env.Valid {
		fallbacks = append(fallbacks, provider.Env(conf.Env.String))
	}
	if len(fallbacks) > 0 {
		values.WithDelegate(provider.Chain(fallbacks...))
	}

	var p provider.Provider = values
	if conf.Interactive.Bool {
		p = provider.Prompt(p, gs.asker,
			provider.WithPromptContext(cmd.Context()),
			provider.WithPromptLogger(gs.logger),
		)
	}
	if conf.HTML.Bool {
		p = provider.Sanitize(p, nil)
	}
	return p, nil
}
