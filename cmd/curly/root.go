package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-curly/internal/config"
	"github.com/goliatone/go-curly/pkg/curlyerr"
)

type rootCommand struct {
	gs   *globalState
	cmd  *cobra.Command
	conf config.Config
}

func newRootCommand(gs *globalState) *rootCommand {
	c := &rootCommand{gs: gs}
	c.cmd = &cobra.Command{
		Use:               "curly",
		Short:             "render curly-brace templates",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.persistentPreRunE,
	}
	c.cmd.SetIn(gs.stdin)
	c.cmd.SetOut(gs.stdout)
	c.cmd.SetErr(gs.stderr)
	c.cmd.PersistentFlags().AddFlagSet(config.FlagSet())

	c.cmd.AddCommand(
		newRenderCommand(c),
		newCheckCommand(c),
		newLexCommand(c),
		newVersionCommand(c),
	)
	return c
}

func (c *rootCommand) persistentPreRunE(cmd *cobra.Command, _ []string) error {
	conf, err := config.Load(c.gs.fs, cmd.Flags())
	if err != nil {
		return err
	}
	level, err := logrus.ParseLevel(conf.LogLevel.String)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", conf.LogLevel.String, err)
	}
	c.gs.logger.SetLevel(level)
	if conf.NoColor.Bool {
		color.NoColor = true
	}
	c.conf = conf
	c.gs.logger.WithFields(logrus.Fields{
		"data":        conf.Data.String,
		"html":        conf.HTML.Bool,
		"interactive": conf.Interactive.Bool,
	}).Debug("configuration loaded")
	return nil
}

func (c *rootCommand) execute() error {
	err := c.cmd.Execute()
	if err != nil {
		printError(c.gs.stderr, err)
	}
	return err
}

// printError writes err in red followed by the offending source line and a
// caret when the error points into a template.
func printError(w io.Writer, err error) {
	fmt.Fprintln(w, color.RedString("%v", err))
	var ce *curlyerr.Error
	if errors.As(err, &ce) {
		if excerpt := ce.Excerpt(); excerpt != "" {
			fmt.Fprintln(w, excerpt)
		}
	}
}

// readInput reads a file, or stdin when path is empty or "-".
func readInput(gs *globalState, path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(gs.stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := afero.ReadFile(gs.fs, path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

func inputArg(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}
