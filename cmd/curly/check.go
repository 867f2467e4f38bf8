package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	curly "github.com/goliatone/go-curly"
)

func newCheckCommand(root *rootCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "check files...",
		Short: "compile templates and report syntax errors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(root.gs, args)
		},
	}
}

// runCheck compiles each distinct path once, reporting every failure rather
// than stopping at the first.
func runCheck(gs *globalState, paths []string) error {
	seen := make(map[string]struct{}, len(paths))
	checked, failed := 0, 0
	for _, path := range paths {
		if _, dup := seen[path]; dup {
			continue
		}
		seen[path] = struct{}{}
		checked++

		t, err := compileFile(gs, path)
		if err != nil {
			failed++
			fmt.Fprintf(gs.stdout, "%s %s\n", color.RedString("FAIL"), path)
			printError(gs.stdout, err)
			continue
		}
		fmt.Fprintf(gs.stdout, "%s   %s (%d directives)\n", color.GreenString("ok"), path, len(t.Directives()))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d templates failed", failed, checked)
	}
	return nil
}

func compileFile(gs *globalState, path string) (*curly.Template, error) {
	tmpl, err := readInput(gs, path)
	if err != nil {
		return nil, err
	}
	return curly.Compile(tmpl, curly.WithLogger(gs.logger))
}
