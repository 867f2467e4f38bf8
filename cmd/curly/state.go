package main

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/goliatone/go-curly/pkg/provider"
)

// globalState carries the process dependencies every command uses, so tests
// can swap the filesystem, the standard streams and the prompt.
type globalState struct {
	fs     afero.Fs
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *logrus.Logger
	asker  provider.Asker
}

func newGlobalState() *globalState {
	return &globalState{
		fs:     afero.NewOsFs(),
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		logger: &logrus.Logger{
			Out:       os.Stderr,
			Formatter: new(logrus.TextFormatter),
			Hooks:     make(logrus.LevelHooks),
			Level:     logrus.WarnLevel,
		},
		asker: provider.SurveyAsker{},
	}
}
