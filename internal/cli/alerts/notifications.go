package alerts

import (
	"fmt"
	"time"

	"github.com/julianstephens/zenith/internal/cli"
	"github.com/julianstephens/zenith/internal/errors"
)

type NotificationListCmd struct {
	Unread bool `help:"Only show unread notifications."`
}

func (c *NotificationListCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Store()
	if err != nil {
		return err
	}
	snap := store.Snapshot()
	now := time.Now()

	fmt.Printf("Notifications (%d unread):\n", snap.UnreadCount())
	shown := 0
	for _, n := range snap.Notifications {
		if c.Unread && n.Read {
			continue
		}
		mark := "•"
		if n.Read {
			mark = " "
		}
		fmt.Printf("  %s [%s] %s - %s (%s, ID: %s)\n", mark, n.Kind, n.Title, n.Message, cli.RelTime(n.Timestamp, now), n.ID)
		if n.ScheduledFor != nil {
			fmt.Printf("      scheduled %s\n", cli.RelTime(*n.ScheduledFor, now))
		}
		shown++
	}
	if shown == 0 {
		fmt.Println("  Nothing to show")
	}
	return nil
}

type NotificationReadCmd struct {
	ID string `arg:"" help:"Notification ID."`
}

func (c *NotificationReadCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Store()
	if err != nil {
		return err
	}

	found := false
	for _, n := range store.Snapshot().Notifications {
		if n.ID == c.ID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("notification %s: %w", c.ID, errors.ErrNotFound)
	}

	if err := store.MarkNotificationRead(c.ID); err != nil {
		return err
	}
	fmt.Println("✓ Marked as read")
	return nil
}

type NotificationClearCmd struct{}

func (c *NotificationClearCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Store()
	if err != nil {
		return err
	}
	if err := store.ClearNotifications(); err != nil {
		return err
	}
	fmt.Println("✓ Notifications cleared")
	return nil
}

type ActivityCmd struct {
	Limit int `short:"n" help:"Number of entries to show." default:"20"`
}

func (c *ActivityCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Store()
	if err != nil {
		return err
	}
	logs := store.Snapshot().Logs
	if len(logs) == 0 {
		fmt.Println("No activity recorded")
		return nil
	}
	if c.Limit > 0 && len(logs) > c.Limit {
		logs = logs[:c.Limit]
	}

	now := time.Now()
	for _, l := range logs {
		fmt.Printf("%-16s %-18s %s\n", cli.RelTime(l.Timestamp, now), l.Action, l.Details)
		fmt.Printf("%16s %s\n", "", l.Device)
	}
	return nil
}
