package constants

import "time"

// SessionState represents the current view of the TUI application
type SessionState int

const (
	AppName             = "zenith"
	DefaultKeyringUser  = "database-connection"
	AIKeyringUser       = "ai-api-key"
	DefaultConfigPath   = "~/.config/zenith/zenith.db"
	DefaultSettingsPath = "~/.config/zenith/config.toml"
	Version             = "v0.1.0"

	// RecordName is the key of the persisted state record
	RecordName    = "zenith-storage-v1"
	RecordVersion = 1

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Simulated network latency for the credential-less auth operations
	DefaultLoginDelay  = 800 * time.Millisecond
	DefaultForgotDelay = 500 * time.Millisecond

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "zenith-"

	// Notify constants
	NotificationDurationMs  = 5000
	NotifyGracePeriod       = 2 * time.Minute
	NotifierLockfileName    = "zenith-notifier.lock"
	TrayAppIdentifier       = "com.julianstephens.zenith"
	TrayExecutablePrefix    = "zenith-tray"
	DefaultReminderSchedule = "* * * * *"

	// AI template defaults
	DefaultAIEndpoint   = "https://generativelanguage.googleapis.com/v1beta"
	DefaultAIModel      = "gemini-2.5-flash"
	DefaultAITimeoutSec = 30

	// Identity defaults
	AvatarURLPrefix     = "https://api.dicebear.com/7.x/avataaars/svg?seed="
	DefaultTheme        = "light"
	UnknownUserID       = "unknown"
	SessionTTL          = 24 * time.Hour
	MilestoneInterval   = 5
	ReminderTitlePrefix = "Reminder: "
)

// Session States
const (
	StateTasks SessionState = iota
	StateHabits
	StateBudget
	StateNotifications
	StateActivity
	StateAddTask
	StateLogin
)
