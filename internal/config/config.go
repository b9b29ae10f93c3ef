package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/stats"
	"github.com/julianstephens/habitlog/internal/utils"
)

// Config holds the environment driven defaults. Command line flags take
// precedence over every field.
type Config struct {
	DB             string `env:"HABITLOG_DB"`
	Debug          bool   `env:"HABITLOG_DEBUG" envDefault:"false"`
	ConfigDir      string `env:"HABITLOG_CONFIG_DIR" envDefault:"~/.config/habitlog"`
	WindowDays     int    `env:"HABITLOG_WINDOW_DAYS" envDefault:"7"`
	TopTriggers    int    `env:"HABITLOG_TOP_TRIGGERS" envDefault:"3"`
	RecentActivity int    `env:"HABITLOG_RECENT_ACTIVITY" envDefault:"5"`
}

// Load reads the given .env files, or ./.env when none are named, and then
// the process environment. Missing .env files are ignored; variables
// already set in the environment win over .env values.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}

	if cfg.ConfigDir == "" {
		cfg.ConfigDir = constants.DefaultConfigDir
	}
	cfg.ConfigDir = utils.ExpandHome(cfg.ConfigDir)
	if cfg.DB == "" {
		cfg.DB = filepath.Join(cfg.ConfigDir, constants.AppName+".db")
	} else if cfg.DB != constants.KeyringConfigValue {
		cfg.DB = utils.ExpandHome(cfg.DB)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects non-positive analytics limits.
func (c *Config) Validate() error {
	if c.WindowDays < 1 {
		return fmt.Errorf("HABITLOG_WINDOW_DAYS must be at least 1, got %d", c.WindowDays)
	}
	if c.TopTriggers < 1 {
		return fmt.Errorf("HABITLOG_TOP_TRIGGERS must be at least 1, got %d", c.TopTriggers)
	}
	if c.RecentActivity < 1 {
		return fmt.Errorf("HABITLOG_RECENT_ACTIVITY must be at least 1, got %d", c.RecentActivity)
	}
	return nil
}

// StatsOptions converts the analytics settings.
func (c *Config) StatsOptions() stats.Options {
	return stats.Options{
		WindowDays:     c.WindowDays,
		TopTriggers:    c.TopTriggers,
		RecentActivity: c.RecentActivity,
	}
}
