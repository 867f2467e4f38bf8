package provider

import (
	"os"
	"strings"

	"github.com/goliatone/go-curly/pkg/curlyerr"
	"github.com/goliatone/go-curly/pkg/format"
)

// Env resolves keys from the process environment. The key is upper-cased,
// dots become underscores and prefix is prepended, so with prefix "APP_"
// the key `db.host` reads APP_DB_HOST.
func Env(prefix string) Provider {
	return envProvider{prefix: prefix, lookup: os.LookupEnv}
}

type envProvider struct {
	prefix string
	lookup func(string) (string, bool)
}

func (e envProvider) Provide(ctx format.Context, key string) (string, error) {
	name := e.prefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
	value, ok := e.lookup(name)
	if !ok {
		return "", curlyerr.InvalidKey(key)
	}
	return format.String(value, ctx)
}
