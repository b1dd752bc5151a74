package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/julianstephens/zenith/internal/storage/postgres"
	"github.com/julianstephens/zenith/internal/storage/sqlite"
)

// Open picks a backend for location: PostgreSQL for postgres:// URLs, a JSON
// document for *.json paths and SQLite for everything else.
func Open(location string) (Provider, error) {
	if postgres.IsConnString(location) {
		if valid, err := postgres.ValidateConnString(location); !valid {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("PostgreSQL connection strings with embedded credentials are not allowed; use the OS keyring, ZENITH_DB_CONNECTION or .pgpass instead")
			}
			return nil, err
		}
		return postgres.New(location), nil
	}

	if strings.EqualFold(filepath.Ext(location), ".json") {
		return NewJSONStore(location), nil
	}
	return sqlite.NewStore(location), nil
}

// OpenAs is Open with an explicit backend name from the settings file.
// An empty backend infers it from location.
func OpenAs(backend, location string) (Provider, error) {
	switch strings.ToLower(backend) {
	case "":
		return Open(location)
	case "json":
		return NewJSONStore(location), nil
	case "sqlite":
		if postgres.IsConnString(location) {
			return nil, fmt.Errorf("backend sqlite cannot use a PostgreSQL connection string")
		}
		return sqlite.NewStore(location), nil
	case "postgres":
		if !postgres.IsConnString(location) {
			return nil, fmt.Errorf("backend postgres needs a postgres:// connection string, got %q", location)
		}
		return Open(location)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// Migrator is implemented by backends with a versioned schema
type Migrator interface {
	Migrate() (int, error)
	SchemaStatus() (current, latest int, err error)
}
