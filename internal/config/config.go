// Package config loads QuickNotes settings from an optional file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. QUICKNOTES_LOG_LEVEL.
const EnvPrefix = "QUICKNOTES"

// Config holds application configuration.
type Config struct {
	Log    LogConfig
	Events EventsConfig
	Search SearchConfig
	UI     UIConfig
	Output OutputConfig
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string
}

// EventsConfig holds change-stream settings.
type EventsConfig struct {
	Buffer int
}

// SearchConfig holds search settings.
type SearchConfig struct {
	FuzzyDistance int `mapstructure:"fuzzy_distance"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Accent string
}

// OutputConfig holds CLI rendering settings.
type OutputConfig struct {
	Format string
}

// Load reads configuration. When path is empty the file is looked up as
// config.yaml in the user config directory; a missing file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("log.level", "info")
	v.SetDefault("events.buffer", 100)
	v.SetDefault("search.fuzzy_distance", 1)
	v.SetDefault("ui.accent", "205")
	v.SetDefault("output.format", "text")

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "quicknotes"))
		}
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	switch c.Output.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unsupported output format %q", c.Output.Format)
	}
	if c.Events.Buffer < 0 {
		return fmt.Errorf("events.buffer must not be negative")
	}
	if c.Search.FuzzyDistance < 0 {
		return fmt.Errorf("search.fuzzy_distance must not be negative")
	}
	return nil
}
