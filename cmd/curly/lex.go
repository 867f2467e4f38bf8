package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-curly/internal/lexer"
)

func newLexCommand(root *rootCommand) *cobra.Command {
	return &cobra.Command{
		Use:    "lex [file|-]",
		Short:  "print the lexemes of a template",
		Args:   cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tmpl, err := readInput(root.gs, inputArg(args))
			if err != nil {
				return err
			}
			lexemes, err := lexer.String(tmpl)
			if err != nil {
				return err
			}
			for _, l := range lexemes {
				fmt.Fprintln(root.gs.stdout, l.String())
			}
			return nil
		},
	}
}
