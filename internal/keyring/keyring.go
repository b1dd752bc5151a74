package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/zenith/internal/constants"
)

var (
	// ErrNotFound is returned when no secret is stored under the requested entry
	ErrNotFound = errors.New("secret not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Entry names a secret stored under the application's keyring service
type Entry string

const (
	// ConnectionString holds a PostgreSQL connection string with credentials
	ConnectionString Entry = constants.DefaultKeyringUser
	// AIKey holds the API key for the template generator
	AIKey Entry = constants.AIKeyringUser
)

// Get reads the secret stored for e. Returns ErrNotFound if nothing is stored.
func Get(e Entry) (string, error) {
	secret, err := keyring.Get(constants.AppName, string(e))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return secret, nil
}

// Set stores secret for e, replacing any previous value
func Set(e Entry, secret string) error {
	if secret == "" {
		return fmt.Errorf("%s cannot be empty", e)
	}
	if err := keyring.Set(constants.AppName, string(e), secret); err != nil {
		return fmt.Errorf("failed to store %s in keyring: %w", e, err)
	}
	return nil
}

// Delete removes the secret stored for e
func Delete(e Entry) error {
	err := keyring.Delete(constants.AppName, string(e))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete %s from keyring: %w", e, err)
	}
	return nil
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	// ErrNotFound means the keyring answered, it just has nothing stored
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
