// Command curly renders curly-brace templates from the command line.
package main

import (
	"os"
)

func main() {
	gs := newGlobalState()
	if err := newRootCommand(gs).execute(); err != nil {
		os.Exit(1)
	}
}
