package render

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Option configures compilation and rendering.
type Option func(*config)

type config struct {
	logger logrus.FieldLogger
}

// WithLogger routes resolution tracing to logger. Entries are emitted at
// debug level only.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

func newConfig(options []Option) config {
	cfg := config{logger: discardLogger()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}

func discardLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.Out = io.Discard
	return logger
}
