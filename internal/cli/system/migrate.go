package system

import (
	"fmt"

	"github.com/julianstephens/zenith/internal/cli"
	"github.com/julianstephens/zenith/internal/storage"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	migrator, ok := ctx.Provider.(storage.Migrator)
	if !ok {
		fmt.Println("JSON storage has no schema. Nothing to migrate.")
		return nil
	}

	if err := ctx.Provider.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	count, err := migrator.Migrate()
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
