package provider

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-curly/pkg/format"
)

var (
	htmlPolicyOnce sync.Once
	htmlPolicy     *bluemonday.Policy
)

// Sanitize wraps p so every resolved value is passed through policy before
// it reaches the output. A nil policy uses a strict policy that keeps
// basic inline markup only.
func Sanitize(p Provider, policy *bluemonday.Policy) Provider {
	if policy == nil {
		policy = inlinePolicy()
	}
	return Func(func(ctx format.Context, key string) (string, error) {
		out, err := p.Provide(ctx, key)
		if err != nil {
			return "", err
		}
		return policy.Sanitize(out), nil
	})
}

func inlinePolicy() *bluemonday.Policy {
	htmlPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("b", "i", "em", "strong", "code", "span", "br")
		policy.AllowAttrs("class").OnElements("span", "code")
		htmlPolicy = policy
	})
	return htmlPolicy
}
