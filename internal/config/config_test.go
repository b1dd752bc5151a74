package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/zenith/internal/constants"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, warnings, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if cfg.Storage.Record != constants.RecordName {
		t.Errorf("Record = %q, want %q", cfg.Storage.Record, constants.RecordName)
	}
	if cfg.Auth.LoginDelay() != constants.DefaultLoginDelay {
		t.Errorf("LoginDelay = %v, want %v", cfg.Auth.LoginDelay(), constants.DefaultLoginDelay)
	}
	if cfg.Reminders.Schedule != constants.DefaultReminderSchedule {
		t.Errorf("Schedule = %q", cfg.Reminders.Schedule)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[storage]
backend = "json"
path = "/tmp/zenith.json"

[auth]
login_delay_ms = 0

[reminders]
schedule = "*/5 * * * *"
desktop = true

[ai]
timeout_sec = 10
`)

	cfg, warnings, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if cfg.Storage.Backend != "json" || cfg.Storage.Path != "/tmp/zenith.json" {
		t.Errorf("Storage = %+v", cfg.Storage)
	}
	if cfg.Storage.Record != constants.RecordName {
		t.Errorf("unset Record should keep default, got %q", cfg.Storage.Record)
	}
	if cfg.Auth.LoginDelay() != 0 {
		t.Errorf("LoginDelay = %v, want 0", cfg.Auth.LoginDelay())
	}
	if cfg.Auth.ForgotDelay() != constants.DefaultForgotDelay {
		t.Errorf("ForgotDelay = %v", cfg.Auth.ForgotDelay())
	}
	if !cfg.Reminders.Desktop || cfg.Reminders.Schedule != "*/5 * * * *" {
		t.Errorf("Reminders = %+v", cfg.Reminders)
	}
	if cfg.AI.Timeout() != 10*time.Second || cfg.AI.Model != constants.DefaultAIModel {
		t.Errorf("AI = %+v", cfg.AI)
	}
}

func TestLoadReportsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `
[storage]
colour = "blue"
`)

	_, warnings, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, want one", warnings)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad syntax", "[storage\n"},
		{"bad backend", "[storage]\nbackend = \"mysql\"\n"},
		{"bad schedule", "[reminders]\nschedule = \"every minute\"\n"},
		{"negative delay", "[auth]\nlogin_delay_ms = -1\n"},
		{"zero timeout", "[ai]\ntimeout_sec = 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("expected Load to fail")
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := Default()
	cfg.Reminders.Desktop = true
	cfg.Storage.Backend = "sqlite"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, warnings, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if *loaded != *cfg {
		t.Errorf("loaded = %+v, want %+v", loaded, cfg)
	}
}
