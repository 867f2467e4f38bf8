// Command curlygen writes Provide methods for struct types so they can be
// used directly as template providers.
//
//	//go:generate curlygen --type User,Account models.go
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"

	"github.com/goliatone/go-curly/internal/codegen"
)

func main() {
	if err := run(os.Args[1:], afero.NewOsFs(), os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("curlygen: %v", err))
		os.Exit(1)
	}
}

func run(args []string, fsys afero.Fs, stdout, stderr io.Writer) error {
	flags := pflag.NewFlagSet("curlygen", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	types := flags.StringSliceP("type", "t", nil, "comma separated struct names (default: structs marked "+codegen.Marker+")")
	output := flags.StringP("output", "o", "", "output file; '-' for stdout (default: <first input>_curly.go)")
	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: curlygen [flags] files...\n\nGenerate curly Provider implementations for struct types.\n\n")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return err
	}

	inputs := flags.Args()
	if len(inputs) == 0 {
		flags.Usage()
		return fmt.Errorf("no input files")
	}

	pkg, err := codegen.ParseFiles(fsys, inputs, codegen.Config{Types: *types})
	if err != nil {
		return err
	}
	src, err := codegen.Generate(pkg)
	if err != nil {
		return err
	}

	target := *output
	if target == "" {
		target = defaultOutput(inputs[0])
	}
	if target == "-" {
		_, err := stdout.Write(src)
		return err
	}
	if err := afero.WriteFile(fsys, target, src, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}
	fmt.Fprintf(stdout, "wrote %s (%d types)\n", target, len(pkg.Structs))
	return nil
}

func defaultOutput(input string) string {
	dir := filepath.Dir(input)
	base := strings.TrimSuffix(filepath.Base(input), ".go")
	return filepath.Join(dir, base+"_curly.go")
}
