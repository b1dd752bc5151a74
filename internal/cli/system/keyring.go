package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/zenith/internal/cli"
	"github.com/julianstephens/zenith/internal/keyring"
	"github.com/julianstephens/zenith/internal/storage/postgres"
)

// entryFor maps the --secret flag to a keyring entry
func entryFor(secret string) keyring.Entry {
	if secret == "ai-key" {
		return keyring.AIKey
	}
	return keyring.ConnectionString
}

// KeyringSetCmd stores a secret in the OS keyring
type KeyringSetCmd struct {
	Value  string `arg:"" help:"PostgreSQL connection string or AI API key to store."`
	Secret string `help:"Which secret to manage (connection|ai-key)." enum:"connection,ai-key" default:"connection"`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	entry := entryFor(cmd.Secret)
	if entry == keyring.ConnectionString {
		if !postgres.IsConnString(cmd.Value) && !strings.Contains(cmd.Value, "host=") {
			return errors.New("connection string must be a valid PostgreSQL connection string")
		}
		if _, err := postgres.ValidateConnString(cmd.Value); err != nil {
			if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return fmt.Errorf("invalid connection string: %w", err)
			}
			// Credentials are fine here: the keyring is encrypted
			fmt.Println("⚠️  Warning: Connection string contains embedded credentials.")
			fmt.Println("   It will be stored as-is in the encrypted OS keyring.")
		}
	}

	if err := keyring.Set(entry, cmd.Value); err != nil {
		return err
	}

	fmt.Printf("✓ %s stored successfully in OS keyring\n", entry)
	if entry == keyring.ConnectionString {
		fmt.Println("  zenith will use it when --config is not given")
	}
	return nil
}

// KeyringGetCmd prints a stored secret with passwords masked
type KeyringGetCmd struct {
	Secret string `help:"Which secret to manage (connection|ai-key)." enum:"connection,ai-key" default:"connection"`
}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	entry := entryFor(cmd.Secret)
	value, err := keyring.Get(entry)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no %s found in keyring. Use 'zenith keyring set' to store one", entry)
		}
		return err
	}

	if entry == keyring.AIKey {
		fmt.Println(maskKey(value))
	} else {
		fmt.Println(maskPassword(value))
	}
	return nil
}

// KeyringDeleteCmd removes a secret from the OS keyring
type KeyringDeleteCmd struct {
	Secret string `help:"Which secret to manage (connection|ai-key)." enum:"connection,ai-key" default:"connection"`
}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	entry := entryFor(cmd.Secret)
	if err := keyring.Delete(entry); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no %s found in keyring", entry)
		}
		return err
	}
	fmt.Printf("✓ %s deleted from OS keyring\n", entry)
	return nil
}

// KeyringStatusCmd checks the availability of the OS keyring
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		fmt.Println("❌ OS keyring is not available on this system")
		return keyring.ErrKeyringUnavailable
	}

	fmt.Println("✓ OS keyring is available")
	for _, entry := range []keyring.Entry{keyring.ConnectionString, keyring.AIKey} {
		if _, err := keyring.Get(entry); err == nil {
			fmt.Printf("✓ %s is stored in keyring\n", entry)
		} else {
			fmt.Printf("ℹ No %s stored in keyring\n", entry)
		}
	}
	return nil
}

// maskPassword masks passwords in connection strings for display
func maskPassword(connStr string) string {
	if postgres.IsConnString(connStr) {
		idx := strings.Index(connStr, "://")
		remaining := connStr[idx+3:]
		// The last @ separates user info from host
		if atIdx := strings.LastIndex(remaining, "@"); atIdx != -1 {
			userInfo := remaining[:atIdx]
			if colonIdx := strings.Index(userInfo, ":"); colonIdx != -1 {
				return connStr[:idx+3] + userInfo[:colonIdx] + ":****" + connStr[idx+3+atIdx:]
			}
		}
		return connStr
	}

	fields := strings.Fields(connStr)
	for i, f := range fields {
		if strings.HasPrefix(f, "password=") {
			fields[i] = "password=****"
		}
	}
	return strings.Join(fields, " ")
}

// maskKey keeps the last four characters of an API key
func maskKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
