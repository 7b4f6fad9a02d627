// Package config loads planner configuration: defaults, an optional
// config.yaml in the data dir, and WAYPLAN_-prefixed environment
// overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all planner configuration.
type Config struct {
	Feed FeedConfig `mapstructure:"feed"`
	Data DataConfig `mapstructure:"data"`
	TUI  TUIConfig  `mapstructure:"tui"`
}

type FeedConfig struct {
	// URL of the tabular feed endpoint. Empty disables the feed flows.
	URL string `mapstructure:"url"`
	// TimeoutSeconds bounds a feed fetch.
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// Timeout returns the fetch timeout as a duration.
func (f FeedConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSeconds) * time.Second
}

type DataConfig struct {
	// Dir is the planner data dir (sqlite store, log file, config.yaml).
	Dir string `mapstructure:"dir"`
	// Catalog optionally overrides the embedded place catalog with a
	// YAML file path.
	Catalog string `mapstructure:"catalog"`
}

type TUIConfig struct {
	// Theme is light, dark, or auto.
	Theme string `mapstructure:"theme"`
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".wayplan"
	}
	return filepath.Join(home, ".wayplan")
}

// Load reads configuration. The config file is optional; a missing one
// just means defaults plus environment.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("feed.url", "")
	v.SetDefault("feed.timeout_seconds", 15)
	v.SetDefault("data.dir", defaultDataDir())
	v.SetDefault("data.catalog", "")
	v.SetDefault("tui.theme", "auto")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(defaultDataDir())
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: WAYPLAN_FEED_URL → feed.url
	v.SetEnvPrefix("WAYPLAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []string

	if c.Feed.TimeoutSeconds <= 0 {
		errs = append(errs, fmt.Sprintf("feed.timeout_seconds must be positive, got %d", c.Feed.TimeoutSeconds))
	}
	if strings.TrimSpace(c.Data.Dir) == "" {
		errs = append(errs, "data.dir is required")
	}
	switch c.TUI.Theme {
	case "light", "dark", "auto":
	default:
		errs = append(errs, fmt.Sprintf("tui.theme must be light, dark, or auto, got %q", c.TUI.Theme))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation: %s", strings.Join(errs, "; "))
	}
	return nil
}
