// Package config layers CLI settings: defaults, a JSON config file, CURLY_*
// environment variables and command line flags, later layers winning.
package config

import (
	"encoding/json"
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	null "gopkg.in/guregu/null.v3"
)

// EnvPrefix is the environment variable prefix, e.g. CURLY_LOG_LEVEL.
const EnvPrefix = "curly"

// Config holds every setting the CLI reads. Unset fields are invalid nulls
// so Apply can tell them apart from explicit zero values.
type Config struct {
	// Data is a JSON or YAML file providing template values.
	Data null.String `json:"data" envconfig:"data"`
	// Env enables environment lookups with the given variable prefix.
	Env null.String `json:"env" envconfig:"env"`
	// HTML sanitises every resolved value.
	HTML null.Bool `json:"html" envconfig:"html"`
	// Interactive prompts for keys nothing else resolves.
	Interactive null.Bool   `json:"interactive" envconfig:"interactive"`
	LogLevel    null.String `json:"logLevel" envconfig:"log_level"`
	NoColor     null.Bool   `json:"noColor" envconfig:"no_color"`
	Output      null.String `json:"output" envconfig:"output"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		LogLevel: null.NewString("warn", false),
	}
}

// Apply overlays the valid fields of cfg onto c.
func (c Config) Apply(cfg Config) Config {
	if cfg.Data.Valid {
		c.Data = cfg.Data
	}
	if cfg.Env.Valid {
		c.Env = cfg.Env
	}
	if cfg.HTML.Valid {
		c.HTML = cfg.HTML
	}
	if cfg.Interactive.Valid {
		c.Interactive = cfg.Interactive
	}
	if cfg.LogLevel.Valid {
		c.LogLevel = cfg.LogLevel
	}
	if cfg.NoColor.Valid {
		c.NoColor = cfg.NoColor
	}
	if cfg.Output.Valid {
		c.Output = cfg.Output
	}
	return c
}

// FlagSet declares the persistent flags backing Config.
func FlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("", pflag.ContinueOnError)
	flags.SortFlags = false
	flags.String("config", "", "JSON config `file`")
	flags.StringP("data", "d", "", "JSON or YAML `file` with template values")
	flags.String("env", "", "resolve missing keys from environment variables with this `prefix`")
	flags.Bool("html", false, "sanitise resolved values as HTML")
	flags.BoolP("interactive", "i", false, "prompt for keys that nothing else resolves")
	flags.String("log-level", "warn", "log `level` (debug, info, warn, error)")
	flags.Bool("no-color", false, "disable colored output")
	flags.StringP("output", "o", "", "write output to `file` instead of stdout")
	return flags
}

// FromFlags reads the flags that were explicitly set.
func FromFlags(flags *pflag.FlagSet) (Config, error) {
	var (
		conf Config
		err  error
	)
	if conf.Data, err = nullString(flags, "data"); err != nil {
		return Config{}, err
	}
	if conf.Env, err = nullString(flags, "env"); err != nil {
		return Config{}, err
	}
	if conf.HTML, err = nullBool(flags, "html"); err != nil {
		return Config{}, err
	}
	if conf.Interactive, err = nullBool(flags, "interactive"); err != nil {
		return Config{}, err
	}
	if conf.LogLevel, err = nullString(flags, "log-level"); err != nil {
		return Config{}, err
	}
	if conf.NoColor, err = nullBool(flags, "no-color"); err != nil {
		return Config{}, err
	}
	if conf.Output, err = nullString(flags, "output"); err != nil {
		return Config{}, err
	}
	return conf, nil
}

// FromFile reads a JSON config file. An empty path yields an empty Config.
func FromFile(fsys afero.Fs, path string) (Config, error) {
	var conf Config
	if path == "" {
		return conf, nil
	}
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &conf); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return conf, nil
}

// FromEnv reads CURLY_* environment variables.
func FromEnv() (Config, error) {
	var conf Config
	if err := envconfig.Process(EnvPrefix, &conf); err != nil {
		return Config{}, fmt.Errorf("config: environment: %w", err)
	}
	return conf, nil
}

// Load merges defaults < config file < environment < flags.
func Load(fsys afero.Fs, flags *pflag.FlagSet) (Config, error) {
	path, err := flags.GetString("config")
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	fileConf, err := FromFile(fsys, path)
	if err != nil {
		return Config{}, err
	}
	envConf, err := FromEnv()
	if err != nil {
		return Config{}, err
	}
	flagConf, err := FromFlags(flags)
	if err != nil {
		return Config{}, err
	}
	return Default().Apply(fileConf).Apply(envConf).Apply(flagConf), nil
}

func nullString(flags *pflag.FlagSet, key string) (null.String, error) {
	v, err := flags.GetString(key)
	if err != nil {
		return null.String{}, fmt.Errorf("config: flag %s: %w", key, err)
	}
	return null.NewString(v, flags.Changed(key)), nil
}

func nullBool(flags *pflag.FlagSet, key string) (null.Bool, error) {
	v, err := flags.GetBool(key)
	if err != nil {
		return null.Bool{}, fmt.Errorf("config: flag %s: %w", key, err)
	}
	return null.NewBool(v, flags.Changed(key)), nil
}
