package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/zenith/internal/cli"
	"github.com/julianstephens/zenith/internal/config"
	"github.com/julianstephens/zenith/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Backend          *string `help:"Storage backend (sqlite, json or postgres; empty infers it from the path)."`
	StoragePath      *string `help:"Storage file path or postgres:// URL without a password."`
	LoginDelayMs     *int    `help:"Simulated sign-in latency in milliseconds."`
	ForgotDelayMs    *int    `help:"Simulated password reset latency in milliseconds."`
	ReminderSchedule *string `help:"Cron schedule for the reminder watcher."`
	Desktop          *bool   `help:"Send due reminders to the desktop tray app."`
	AIEndpoint       *string `name:"ai-endpoint" help:"Base URL of the template generation API."`
	AIModel          *string `name:"ai-model" help:"Model used for template generation."`
	AITimeoutSec     *int    `name:"ai-timeout-sec" help:"Template generation timeout in seconds."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings := ctx.Config
	if settings == nil {
		settings = config.Default()
	}

	if c.List {
		fmt.Printf("Settings file: %s\n\n", ctx.SettingsPath)
		fmt.Println("Storage:")
		fmt.Printf("  Backend:               %s\n", orAuto(settings.Storage.Backend))
		fmt.Printf("  Path:                  %s\n", settings.Storage.Path)
		fmt.Printf("  Record:                %s\n", settings.Storage.Record)
		fmt.Println("\nAuth:")
		fmt.Printf("  Login Delay:           %v\n", settings.Auth.LoginDelay())
		fmt.Printf("  Forgot Delay:          %v\n", settings.Auth.ForgotDelay())
		fmt.Println("\nReminders:")
		fmt.Printf("  Schedule:              %s\n", settings.Reminders.Schedule)
		fmt.Printf("  Desktop:               %v\n", settings.Reminders.Desktop)
		fmt.Println("\nTemplates:")
		fmt.Printf("  Endpoint:              %s\n", settings.AI.Endpoint)
		fmt.Printf("  Model:                 %s\n", settings.AI.Model)
		fmt.Printf("  Timeout:               %v\n", settings.AI.Timeout())
		return nil
	}

	updated := *settings
	changed := false
	if c.Backend != nil {
		updated.Storage.Backend = *c.Backend
		changed = true
	}
	if c.StoragePath != nil {
		updated.Storage.Path = *c.StoragePath
		changed = true
	}
	if c.LoginDelayMs != nil {
		updated.Auth.LoginDelayMs = *c.LoginDelayMs
		changed = true
	}
	if c.ForgotDelayMs != nil {
		updated.Auth.ForgotDelayMs = *c.ForgotDelayMs
		changed = true
	}
	if c.ReminderSchedule != nil {
		updated.Reminders.Schedule = *c.ReminderSchedule
		changed = true
	}
	if c.Desktop != nil {
		updated.Reminders.Desktop = *c.Desktop
		changed = true
	}
	if c.AIEndpoint != nil {
		updated.AI.Endpoint = *c.AIEndpoint
		changed = true
	}
	if c.AIModel != nil {
		updated.AI.Model = *c.AIModel
		changed = true
	}
	if c.AITimeoutSec != nil {
		updated.AI.TimeoutSec = *c.AITimeoutSec
		changed = true
	}

	if !changed {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	if err := updated.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	path, err := utils.ExpandHome(ctx.SettingsPath)
	if err != nil {
		return fmt.Errorf("failed to resolve settings path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	if err := updated.Save(path); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	*settings = updated
	ctx.Config = settings

	fmt.Println("Settings updated successfully.")
	return nil
}

func orAuto(backend string) string {
	if backend == "" {
		return "(inferred from path)"
	}
	return backend
}
