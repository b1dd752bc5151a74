package system

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/zenith/internal/cli"
	"github.com/julianstephens/zenith/internal/models"
	"github.com/julianstephens/zenith/internal/state"
	"github.com/julianstephens/zenith/internal/summary"
)

// exportDocument is the portable form of a snapshot. The session token is
// never exported.
type exportDocument struct {
	ExportedAt      time.Time              `json:"exported_at" yaml:"exported_at"`
	User            *models.User           `json:"user" yaml:"user"`
	IsAuthenticated bool                   `json:"is_authenticated" yaml:"is_authenticated"`
	Tasks           []models.Task          `json:"tasks" yaml:"tasks"`
	Habits          []models.Habit         `json:"habits" yaml:"habits"`
	Transactions    []models.Transaction   `json:"transactions" yaml:"transactions"`
	Budget          summary.BudgetOverview `json:"budget" yaml:"budget"`
	Logs            []models.ActivityLog   `json:"logs" yaml:"logs"`
	Notifications   []models.Notification  `json:"notifications" yaml:"notifications"`
}

func newExportDocument(snap state.Snapshot, now time.Time) exportDocument {
	return exportDocument{
		ExportedAt:      now.UTC(),
		User:            snap.User,
		IsAuthenticated: snap.IsAuthenticated,
		Tasks:           snap.Tasks,
		Habits:          snap.Habits,
		Transactions:    snap.Transactions,
		Budget:          summary.Budget(snap.Transactions),
		Logs:            snap.Logs,
		Notifications:   snap.Notifications,
	}
}

type ExportCmd struct {
	Format string `short:"f" help:"Output format (json|yaml)." enum:"json,yaml" default:"json"`
	Output string `short:"o" help:"Write to this file instead of stdout." type:"path"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Store()
	if err != nil {
		return err
	}
	doc := newExportDocument(store.Snapshot(), time.Now())

	var w io.Writer = os.Stdout
	if c.Output != "" {
		f, err := os.OpenFile(c.Output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create export file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := writeExport(w, c.Format, doc); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	if c.Output != "" {
		fmt.Printf("✓ Exported to %s\n", c.Output)
	}
	return nil
}

func writeExport(w io.Writer, format string, doc exportDocument) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}
