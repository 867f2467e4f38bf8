package config_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	null "gopkg.in/guregu/null.v3"

	"github.com/goliatone/go-curly/internal/config"
)

func TestApply(t *testing.T) {
	base := config.Config{
		Data:     null.StringFrom("base.json"),
		LogLevel: null.StringFrom("info"),
	}
	overlay := config.Config{
		LogLevel: null.StringFrom("debug"),
		HTML:     null.BoolFrom(false),
	}

	got := base.Apply(overlay)

	assert.Equal(t, "base.json", got.Data.String)
	assert.Equal(t, "debug", got.LogLevel.String)
	assert.True(t, got.HTML.Valid)
	assert.False(t, got.HTML.Bool)
	assert.False(t, got.Output.Valid)
}

func TestLoad_Layering(t *testing.T) {
	// Arrange
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/curly.json",
		[]byte(`{"data":"file.yaml","logLevel":"info","html":true,"output":"file.out"}`), 0o644))
	t.Setenv("CURLY_LOG_LEVEL", "error")
	t.Setenv("CURLY_INTERACTIVE", "true")

	flags := config.FlagSet()
	require.NoError(t, flags.Parse([]string{"--config", "/etc/curly.json", "-o", "flag.out"}))

	// Act
	conf, err := config.Load(fs, flags)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "file.yaml", conf.Data.String)
	assert.Equal(t, "error", conf.LogLevel.String)
	assert.True(t, conf.HTML.Bool)
	assert.True(t, conf.Interactive.Bool)
	assert.Equal(t, "flag.out", conf.Output.String)
	assert.False(t, conf.NoColor.Bool)
}

func TestLoad_Defaults(t *testing.T) {
	flags := config.FlagSet()
	require.NoError(t, flags.Parse(nil))

	conf, err := config.Load(afero.NewMemMapFs(), flags)

	require.NoError(t, err)
	assert.Equal(t, "warn", conf.LogLevel.String)
	assert.False(t, conf.LogLevel.Valid)
	assert.False(t, conf.Data.Valid)
}

func TestFromFile_Errors(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "bad.json", []byte(`{"data":`), 0o644))

	_, err := config.FromFile(fs, "bad.json")
	assert.ErrorContains(t, err, "config: parse bad.json")

	_, err = config.FromFile(fs, "missing.json")
	assert.ErrorContains(t, err, "config: read missing.json")

	conf, err := config.FromFile(fs, "")
	require.NoError(t, err)
	assert.Equal(t, config.Config{}, conf)
}

func TestFromEnv_InvalidBool(t *testing.T) {
	t.Setenv("CURLY_HTML", "maybe")

	_, err := config.FromEnv()
	assert.Error(t, err)
}
