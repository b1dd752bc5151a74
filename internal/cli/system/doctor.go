package system

import (
	"fmt"
	"time"

	"github.com/julianstephens/zenith/internal/backup"
	"github.com/julianstephens/zenith/internal/cli"
	"github.com/julianstephens/zenith/internal/keyring"
	"github.com/julianstephens/zenith/internal/storage"
	"github.com/julianstephens/zenith/internal/validation"
)

type DoctorCmd struct{}

type check struct {
	name string
	// needsStorage checks are skipped when storage cannot be loaded
	needsStorage bool
	// warnOnly checks never fail the run
	warnOnly bool
	run      func(ctx *cli.Context) error
}

var checks = []check{
	{name: "Storage reachable", run: checkStorageReachable},
	{name: "Schema version", needsStorage: true, run: checkSchemaVersion},
	{name: "Migrations complete", needsStorage: true, run: checkMigrationsComplete},
	{name: "Persisted state", needsStorage: true, run: checkStateLoads},
	{name: "Data validation", needsStorage: true, warnOnly: true, run: checkValidation},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
	{name: "OS keyring", warnOnly: true, run: checkKeyring},
	{name: "Clock/timezone", run: func(*cli.Context) error { return checkClockTimezone() }},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	reachable := false
	for _, c := range checks {
		if c.needsStorage && !reachable {
			fmt.Printf("⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}

		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}

		if c.name == "Storage reachable" {
			reachable = err == nil
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkStorageReachable(ctx *cli.Context) error {
	if err := ctx.Provider.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	if _, err := ctx.Provider.ListRecords(); err != nil {
		return fmt.Errorf("failed to query storage: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	migrator, ok := ctx.Provider.(storage.Migrator)
	if !ok {
		// JSON storage doesn't have a schema version
		return nil
	}
	current, latest, err := migrator.SchemaStatus()
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	migrator, ok := ctx.Provider.(storage.Migrator)
	if !ok {
		return nil
	}
	current, latest, err := migrator.SchemaStatus()
	if err != nil {
		return err
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'zenith migrate')", current, latest)
	}
	return nil
}

func checkStateLoads(ctx *cli.Context) error {
	_, err := ctx.Store()
	return err
}

func checkValidation(ctx *cli.Context) error {
	store, err := ctx.Store()
	if err != nil {
		return err
	}
	result := validation.Check(store.Snapshot())
	if result.HasConflicts() {
		return fmt.Errorf("found %d consistency issue(s), run 'zenith validate' for details", len(result.Conflicts))
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if !ctx.IsFileBacked() {
		return nil
	}
	mgr := backup.NewManager(ctx.Provider.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'zenith backup create'")
	}
	return nil
}

func checkKeyring(*cli.Context) error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	return nil
}

func checkClockTimezone() error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if _, err := time.LoadLocation("America/New_York"); err != nil {
		return fmt.Errorf("timezone database unavailable: %w", err)
	}
	return nil
}
