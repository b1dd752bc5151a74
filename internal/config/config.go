// Package config loads the optional config.toml settings file.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/robfig/cron/v3"

	"github.com/julianstephens/zenith/internal/constants"
)

type Config struct {
	Storage   Storage   `toml:"storage"`
	Auth      Auth      `toml:"auth"`
	Reminders Reminders `toml:"reminders"`
	AI        AI        `toml:"ai"`
}

type Storage struct {
	// Backend is "sqlite", "json" or "postgres". Empty means infer from Path.
	Backend string `toml:"backend"`
	// Path is a file path or a postgres:// URL without a password
	Path string `toml:"path"`
	// Record is the name of the persisted state record
	Record string `toml:"record"`
}

type Auth struct {
	LoginDelayMs  int `toml:"login_delay_ms"`
	ForgotDelayMs int `toml:"forgot_delay_ms"`
}

type Reminders struct {
	// Schedule is a five-field cron spec for the reminder check
	Schedule string `toml:"schedule"`
	// Desktop sends due reminders to the tray app instead of stdout
	Desktop bool `toml:"desktop"`
}

type AI struct {
	Endpoint   string `toml:"endpoint"`
	Model      string `toml:"model"`
	TimeoutSec int    `toml:"timeout_sec"`
}

// Default returns the settings used when no file exists
func Default() *Config {
	return &Config{
		Storage: Storage{
			Path:   constants.DefaultConfigPath,
			Record: constants.RecordName,
		},
		Auth: Auth{
			LoginDelayMs:  int(constants.DefaultLoginDelay / time.Millisecond),
			ForgotDelayMs: int(constants.DefaultForgotDelay / time.Millisecond),
		},
		Reminders: Reminders{
			Schedule: constants.DefaultReminderSchedule,
		},
		AI: AI{
			Endpoint:   constants.DefaultAIEndpoint,
			Model:      constants.DefaultAIModel,
			TimeoutSec: constants.DefaultAITimeoutSec,
		},
	}
}

// Load reads path on top of the defaults. A missing file is not an error.
// Keys the file sets that Config does not know are returned as warnings.
func Load(path string) (*Config, []string, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	var warnings []string
	for _, key := range meta.Undecoded() {
		warnings = append(warnings, fmt.Sprintf("unknown config key %q", key.String()))
	}

	if err := cfg.Validate(); err != nil {
		return nil, warnings, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, warnings, nil
}

// Validate checks value ranges and the cron schedule
func (c *Config) Validate() error {
	switch strings.ToLower(c.Storage.Backend) {
	case "", "sqlite", "json", "postgres":
	default:
		return fmt.Errorf("storage.backend must be sqlite, json or postgres, got %q", c.Storage.Backend)
	}
	if c.Auth.LoginDelayMs < 0 || c.Auth.ForgotDelayMs < 0 {
		return fmt.Errorf("auth delays cannot be negative")
	}
	if c.AI.TimeoutSec <= 0 {
		return fmt.Errorf("ai.timeout_sec must be positive, got %d", c.AI.TimeoutSec)
	}
	if _, err := cron.ParseStandard(c.Reminders.Schedule); err != nil {
		return fmt.Errorf("reminders.schedule: %w", err)
	}
	return nil
}

// Save writes the config as TOML
func (c *Config) Save(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("create config file %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("write config file %s: %w", path, err)
	}
	return nil
}

func (a Auth) LoginDelay() time.Duration {
	return time.Duration(a.LoginDelayMs) * time.Millisecond
}

func (a Auth) ForgotDelay() time.Duration {
	return time.Duration(a.ForgotDelayMs) * time.Millisecond
}

func (a AI) Timeout() time.Duration {
	return time.Duration(a.TimeoutSec) * time.Second
}
