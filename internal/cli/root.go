package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"

	"github.com/julianstephens/zenith/internal/backup"
	"github.com/julianstephens/zenith/internal/config"
	"github.com/julianstephens/zenith/internal/logger"
	"github.com/julianstephens/zenith/internal/models"
	"github.com/julianstephens/zenith/internal/state"
	"github.com/julianstephens/zenith/internal/storage"
	"github.com/julianstephens/zenith/internal/storage/postgres"
	"github.com/julianstephens/zenith/internal/utils"
)

type Context struct {
	Provider storage.Provider
	Config   *config.Config
	// SettingsPath is where Config was read from and where settings changes go
	SettingsPath string
	// StoreOptions are handed to state.New; the persister is filled in from Provider
	StoreOptions state.Options

	store *state.Store
}

// Store loads the provider and the persisted state on first use
func (c *Context) Store() (*state.Store, error) {
	if c.store != nil {
		return c.store, nil
	}
	if err := c.Provider.Load(); err != nil {
		return nil, err
	}

	opts := c.StoreOptions
	opts.Persister = state.NewRecordPersister(c.Provider, c.recordName())
	s, err := state.New(opts)
	if err != nil {
		return nil, err
	}
	c.store = s
	return s, nil
}

func (c *Context) recordName() string {
	if c.Config == nil {
		return ""
	}
	return c.Config.Storage.Record
}

// Close releases the store and the provider
func (c *Context) Close() error {
	if c.store != nil {
		_ = c.store.Close()
		c.store = nil
	}
	if c.Provider == nil {
		return nil
	}
	return c.Provider.Close()
}

// IsFileBacked reports whether storage lives in a local file that can be
// backed up
func (c *Context) IsFileBacked() bool {
	_, isPostgres := c.Provider.(*postgres.Store)
	return !isPostgres
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if !c.IsFileBacked() {
		return
	}
	mgr := backup.NewManager(c.Provider.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Today returns the current date in the signed-in user's timezone
func Today(snap state.Snapshot, now time.Time) string {
	tz := "UTC"
	if snap.User != nil && snap.User.Timezone != "" {
		tz = snap.User.Timezone
	}
	today, err := utils.TodayInTimezone(tz)
	if err != nil || now.IsZero() {
		return now.UTC().Format("2006-01-02")
	}
	return today
}

// RelTime renders t relative to now, e.g. "3 minutes ago"
func RelTime(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// PromptPassword asks for a password on the terminal without echoing it
func PromptPassword(title string) (string, error) {
	var password string
	err := huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Value(&password).
		Run()
	if err != nil {
		return "", err
	}
	return password, nil
}

// Confirm asks a yes/no question, defaulting to no
func Confirm(title string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	return ok, err
}

// FormatTask renders a task as a single listing line
func FormatTask(t models.Task) string {
	due := ""
	if t.DueDate != "" {
		due = " due " + t.DueDate
	}
	return fmt.Sprintf("[%s] %s (%s, %s%s)", t.ID, t.Title, t.Status, strings.ToLower(string(t.Priority)), due)
}
