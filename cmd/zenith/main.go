package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/zenith/internal/cli"
	"github.com/julianstephens/zenith/internal/cli/account"
	"github.com/julianstephens/zenith/internal/cli/alerts"
	"github.com/julianstephens/zenith/internal/cli/backups"
	"github.com/julianstephens/zenith/internal/cli/finance"
	"github.com/julianstephens/zenith/internal/cli/habits"
	"github.com/julianstephens/zenith/internal/cli/settings"
	"github.com/julianstephens/zenith/internal/cli/system"
	"github.com/julianstephens/zenith/internal/cli/tasks"
	"github.com/julianstephens/zenith/internal/config"
	"github.com/julianstephens/zenith/internal/constants"
	"github.com/julianstephens/zenith/internal/device"
	zerrors "github.com/julianstephens/zenith/internal/errors"
	"github.com/julianstephens/zenith/internal/keyring"
	"github.com/julianstephens/zenith/internal/locale"
	"github.com/julianstephens/zenith/internal/logger"
	"github.com/julianstephens/zenith/internal/session"
	"github.com/julianstephens/zenith/internal/state"
	"github.com/julianstephens/zenith/internal/storage"
	"github.com/julianstephens/zenith/internal/storage/postgres"
	"github.com/julianstephens/zenith/internal/utils"
)

// connectionEnv holds a PostgreSQL connection string that may carry credentials
const connectionEnv = "ZENITH_DB_CONNECTION"

var CLI struct {
	Version      kong.VersionFlag
	Config       string `help:"Storage location: a SQLite or JSON file path, or a PostgreSQL connection string. Credentials must NOT be embedded in the connection string; use the OS keyring, ZENITH_DB_CONNECTION or .pgpass instead." env:"ZENITH_STORAGE"`
	SettingsFile string `name:"settings" help:"Settings file path." type:"string" default:"~/.config/zenith/config.toml"`
	DebugLog     bool   `name:"debug" help:"Enable debug logging to stderr." env:"ZENITH_DEBUG"`

	Init     system.InitCmd     `cmd:"" help:"Initialize zenith storage."`
	Migrate  system.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Tui      system.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Debug    system.DebugCmd    `cmd:"" help:"Debug commands for troubleshooting."`
	Validate system.ValidateCmd `cmd:"" help:"Validate stored data for inconsistencies."`
	Export   system.ExportCmd   `cmd:"" help:"Export all data as JSON or YAML."`

	Login          account.LoginCmd          `cmd:"" help:"Sign in."`
	Register       account.RegisterCmd       `cmd:"" help:"Create an account and sign in."`
	ForgotPassword account.ForgotPasswordCmd `cmd:"" help:"Request a password reset link."`
	Logout         account.LogoutCmd         `cmd:"" help:"Sign out."`
	Whoami         account.WhoamiCmd         `cmd:"" help:"Show the signed-in user."`
	Profile        struct {
		Set account.ProfileSetCmd `cmd:"" help:"Update profile fields and preferences."`
	} `cmd:"" help:"Manage your profile."`

	Dashboard system.DashboardCmd `cmd:"" help:"Show the home screen overview."`
	Task      struct {
		Add    tasks.TaskAddCmd    `cmd:"" help:"Add a new task."`
		List   tasks.TaskListCmd   `cmd:"" help:"List all tasks."`
		Status tasks.TaskStatusCmd `cmd:"" help:"Change a task's status."`
	} `cmd:"" help:"Manage tasks."`
	Habit struct {
		List   habits.HabitListCmd   `cmd:"" help:"List habits and streaks." default:"1"`
		Toggle habits.HabitToggleCmd `cmd:"" help:"Toggle a habit's completion for a date."`
	} `cmd:"" help:"Manage habits and habit tracking."`
	Tx struct {
		Add  finance.TxAddCmd  `cmd:"" help:"Record a transaction."`
		List finance.TxListCmd `cmd:"" help:"List transactions."`
	} `cmd:"" help:"Manage transactions."`
	Budget finance.BudgetCmd `cmd:"" help:"Show the budget overview."`

	Reminder struct {
		Add alerts.ReminderAddCmd `cmd:"" help:"Schedule a reminder."`
	} `cmd:"" help:"Manage reminders."`
	Notifications struct {
		List  alerts.NotificationListCmd  `cmd:"" help:"List notifications." default:"1"`
		Read  alerts.NotificationReadCmd  `cmd:"" help:"Mark a notification as read."`
		Clear alerts.NotificationClearCmd `cmd:"" help:"Delete all notifications."`
	} `cmd:"" help:"Manage notifications."`
	Activity alerts.ActivityCmd `cmd:"" help:"Show the activity log."`
	Notify   system.NotifyCmd   `cmd:"" help:"Deliver reminders that just came due (for cron or timers)."`
	Watch    system.WatchCmd    `cmd:"" help:"Deliver reminders on a schedule until interrupted."`
	Template struct {
		Generate system.TemplateCmd        `cmd:"" default:"withargs" help:"Generate a planning template from a prompt."`
		Catalog  system.TemplateCatalogCmd `cmd:"" help:"Browse the built-in template catalog."`
	} `cmd:"" help:"Generate or browse planning templates."`

	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage storage backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a secret in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show a stored secret (masked)."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove a secret from the OS keyring."`
		Status system.KeyringStatusCmd `cmd:"" help:"Show keyring availability and stored secrets."`
	} `cmd:"" help:"Manage secrets in the OS keyring."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal productivity hub: tasks, habits, budget and reminders"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	settingsPath, err := utils.ExpandHome(CLI.SettingsFile)
	if err != nil {
		zerrors.Fatal(fmt.Errorf("failed to resolve settings path: %w", err))
	}

	if err := logger.Init(logger.Config{
		Debug:     CLI.DebugLog,
		ConfigDir: filepath.Dir(settingsPath),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	cfg, warnings, err := config.Load(settingsPath)
	if err != nil {
		zerrors.Fatal(err)
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}

	provider, err := openStorage(cfg)
	if err != nil {
		zerrors.Fatal(err)
	}

	issuer, err := session.NewIssuer(constants.SessionTTL)
	if err != nil {
		zerrors.Fatal(err)
	}

	appCtx := &cli.Context{
		Provider:     provider,
		Config:       cfg,
		SettingsPath: settingsPath,
		StoreOptions: state.Options{
			Locale:      locale.System{},
			Device:      device.Descriptor,
			Tokens:      issuer,
			LoginDelay:  state.Delay(cfg.Auth.LoginDelay()),
			ForgotDelay: state.Delay(cfg.Auth.ForgotDelay()),
		},
	}

	err = ctx.Run(appCtx)
	if cerr := appCtx.Close(); cerr != nil {
		logger.Warn("Failed to close storage", "error", cerr)
	}
	if err != nil {
		zerrors.Fatal(err)
	}
}

// openStorage resolves the storage location. An explicit --config or a path
// set in the settings file wins; otherwise a connection string from the
// environment or the OS keyring is used, and finally the default file.
func openStorage(cfg *config.Config) (storage.Provider, error) {
	location := CLI.Config
	if location == "" && cfg.Storage.Path != constants.DefaultConfigPath {
		location = cfg.Storage.Path
	}

	if location == "" {
		if connStr, ok := trustedConnString(); ok {
			logger.Debug("Using PostgreSQL connection string from secret store")
			return postgres.New(connStr), nil
		}
		location = cfg.Storage.Path
	}

	location, err := utils.ExpandHome(location)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage path: %w", err)
	}
	return storage.OpenAs(cfg.Storage.Backend, location)
}

// trustedConnString returns a connection string from ZENITH_DB_CONNECTION or
// the OS keyring. Both may carry credentials.
func trustedConnString() (string, bool) {
	if connStr := os.Getenv(connectionEnv); connStr != "" {
		return connStr, true
	}
	connStr, err := keyring.Get(keyring.ConnectionString)
	if err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			logger.Debug("Keyring lookup failed", "error", err)
		}
		return "", false
	}
	return connStr, true
}
