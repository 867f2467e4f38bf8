package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-curly/pkg/curlyerr"
	"github.com/goliatone/go-curly/pkg/format"
)

// ErrAborted is returned when the user interrupts a prompt.
var ErrAborted = errors.New("provider: prompt aborted")

// Question describes one interactive lookup.
type Question struct {
	Key     string
	Message string
	Help    string
}

// Asker abstracts the terminal so prompting can be tested without one.
type Asker interface {
	Ask(ctx context.Context, q Question) (string, error)
}

// AskerFunc adapts a function to Asker.
type AskerFunc func(ctx context.Context, q Question) (string, error)

// Ask calls f.
func (f AskerFunc) Ask(ctx context.Context, q Question) (string, error) {
	return f(ctx, q)
}

// SurveyAsker prompts on the controlling terminal.
type SurveyAsker struct{}

// Ask shows a text input for q.
func (SurveyAsker) Ask(ctx context.Context, q Question) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	prompt := &survey.Input{
		Message: q.Message,
		Help:    q.Help,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

// PromptOption customises Prompt.
type PromptOption func(*prompter)

// WithPromptContext sets the context passed to the asker.
func WithPromptContext(ctx context.Context) PromptOption {
	return func(p *prompter) {
		if ctx != nil {
			p.ctx = ctx
		}
	}
}

// WithPromptLogger sets the logger used to trace prompts.
func WithPromptLogger(logger logrus.FieldLogger) PromptOption {
	return func(p *prompter) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Prompt wraps p so keys it cannot resolve are asked for interactively.
// Each answer is asked once and reused for later directives with the same
// key. Errors other than an unknown key are returned as is.
func Prompt(p Provider, asker Asker, opts ...PromptOption) Provider {
	if asker == nil {
		asker = SurveyAsker{}
	}
	discard := logrus.New()
	discard.Out = io.Discard
	pr := &prompter{
		next:    p,
		asker:   asker,
		ctx:     context.Background(),
		logger:  discard,
		answers: make(map[string]string),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(pr)
		}
	}
	return pr
}

type prompter struct {
	next   Provider
	asker  Asker
	ctx    context.Context
	logger logrus.FieldLogger

	mu      sync.Mutex
	answers map[string]string
}

func (p *prompter) Provide(ctx format.Context, key string) (string, error) {
	if p.next != nil {
		out, err := p.next.Provide(ctx, key)
		if err == nil || !curlyerr.IsGeneric(err) {
			return out, err
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	answer, ok := p.answers[key]
	if !ok {
		p.logger.WithField("key", key).Debug("prompting for value")
		var err error
		answer, err = p.asker.Ask(p.ctx, Question{
			Key:     key,
			Message: fmt.Sprintf("Value for %s:", key),
			Help:    fmt.Sprintf("Rendered in place of the directive %s", ctx.Segment()),
		})
		if err != nil {
			return "", fmt.Errorf("provider: prompt %s: %w", key, err)
		}
		p.answers[key] = answer
	}
	return format.String(answer, ctx)
}
