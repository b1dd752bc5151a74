package alerts

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/zenith/internal/cli"
	"github.com/julianstephens/zenith/internal/utils"
)

type ReminderAddCmd struct {
	Title   string `arg:"" help:"Reminder title."`
	Message string `arg:"" help:"Reminder message."`
	At      string `help:"When to remind (RFC3339, 'YYYY-MM-DD HH:MM' or YYYY-MM-DD), in your profile timezone." required:""`
}

func (c *ReminderAddCmd) Run(ctx *cli.Context) error {
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("title cannot be empty")
	}

	store, err := ctx.Store()
	if err != nil {
		return err
	}

	loc := time.UTC
	if u := store.Snapshot().User; u != nil && u.Timezone != "" {
		if l, err := utils.LoadLocation(u.Timezone); err == nil {
			loc = l
		}
	}
	at, err := utils.ParseDateTime(c.At, loc)
	if err != nil {
		return err
	}

	if err := store.CreateReminder(c.Title, c.Message, at); err != nil {
		return fmt.Errorf("failed to create reminder: %w", err)
	}
	fmt.Printf("⏰ Reminder %q set for %s\n", c.Title, at.In(loc).Format("Mon Jan 2 15:04 MST"))
	return nil
}
