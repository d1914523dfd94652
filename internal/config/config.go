// Package config loads formjson settings from a YAML file, FORMJSON_
// environment variables and command-line flags using Viper. Flags take
// precedence over the environment, which takes precedence over the file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/tomasbasham/formjson"
)

// EnvPrefix is the prefix of environment variables read by [Load].
const EnvPrefix = "FORMJSON"

type Config struct {
	Class  string      `mapstructure:"class"`
	Format string      `mapstructure:"format"`
	Indent string      `mapstructure:"indent"`
	Log    LogConfig   `mapstructure:"log"`
	Watch  WatchConfig `mapstructure:"watch"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// OutputFormat returns the configured output format.
func (c *Config) OutputFormat() (formjson.Format, error) {
	return formjson.ParseFormat(c.Format)
}

// New returns a Viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("class", formjson.DefaultClass)
	v.SetDefault("format", "json")
	v.SetDefault("indent", "  ")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("watch.debounce", 200*time.Millisecond)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds the flags in fs to their configuration keys. Flag names use
// dashes where keys use dots, so --log-level sets log.level.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" || err != nil {
			return
		}
		key := strings.ReplaceAll(f.Name, "-", ".")
		err = v.BindPFlag(key, f)
	})
	return err
}

// Load reads the configuration file, if any, and decodes the merged settings.
// An explicit file must exist; otherwise .formjson.yaml is looked up in the
// working directory and the home directory and may be absent.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(".formjson")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode config: %w", err)
	}
	if strings.TrimSpace(cfg.Class) == "" {
		return nil, fmt.Errorf("config: class must not be empty")
	}
	if _, err := cfg.OutputFormat(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
