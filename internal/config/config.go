// Package config loads the translator's optional project configuration
// with viper: a YAML file, CPTRANS_-prefixed environment variables, and
// flags bound by the caller, merged in that priority order.
package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds everything the translator needs beyond spec.md's bare
// file-argument invocation (spec §2.2).
type Config struct {
	ExtraTypes          []string `mapstructure:"extra_types"`
	Extensions          []string `mapstructure:"extensions"`
	Exclude             []string `mapstructure:"exclude"`
	WatchDebounceMillis int      `mapstructure:"watch_debounce_millis"`
	Color               string   `mapstructure:"color"`
}

// Defaults returns the configuration used when no file, env var, or flag
// overrides a field.
func Defaults() Config {
	return Config{
		Extensions:          []string{".cp", ".cplus"},
		WatchDebounceMillis: 200,
		Color:               "auto",
	}
}

// Load builds a Config from (in increasing priority) the defaults, an
// optional config file, CPTRANS_-prefixed environment variables, and the
// flags already registered on flags. explicitPath, if non-empty, must
// resolve or loading fails; otherwise a missing default file is not an
// error.
func Load(flags *pflag.FlagSet, explicitPath string) (Config, error) {
	v := viper.New()
	d := Defaults()
	v.SetDefault("extensions", d.Extensions)
	v.SetDefault("watch_debounce_millis", d.WatchDebounceMillis)
	v.SetDefault("color", d.Color)

	v.SetEnvPrefix("CPTRANS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		_ = v.BindPFlags(flags)
	}

	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	} else {
		v.SetConfigName(".cptrans")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
