package habits

import (
	"fmt"
	"time"

	"github.com/julianstephens/zenith/internal/cli"
	"github.com/julianstephens/zenith/internal/errors"
	"github.com/julianstephens/zenith/internal/utils"
)

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Store()
	if err != nil {
		return err
	}
	snap := store.Snapshot()
	if len(snap.Habits) == 0 {
		fmt.Println("No habits found")
		return nil
	}

	today := cli.Today(snap, time.Now())
	fmt.Printf("Habits (%s):\n", today)
	for _, h := range snap.Habits {
		mark := " "
		if h.IsCompleted(today) {
			mark = "✓"
		}
		fmt.Printf("  [%s] %s (ID: %s) - 🔥 %d day streak, %d completions\n",
			mark, h.Name, h.ID, h.Streak, len(h.CompletedDates))
	}
	return nil
}

type HabitToggleCmd struct {
	ID   string `arg:"" help:"Habit ID."`
	Date string `help:"Date to toggle (YYYY-MM-DD). Defaults to today."`
}

func (c *HabitToggleCmd) Run(ctx *cli.Context) error {
	if c.Date != "" {
		if err := utils.ValidateDate(c.Date); err != nil {
			return err
		}
	}

	store, err := ctx.Store()
	if err != nil {
		return err
	}
	snap := store.Snapshot()
	if _, ok := snap.FindHabit(c.ID); !ok {
		return fmt.Errorf("habit %s: %w", c.ID, errors.ErrNotFound)
	}

	date := c.Date
	if date == "" {
		date = cli.Today(snap, time.Now())
	}
	if err := store.ToggleHabit(c.ID, date); err != nil {
		return fmt.Errorf("failed to toggle habit: %w", err)
	}

	h, _ := store.Snapshot().FindHabit(c.ID)
	if h.IsCompleted(date) {
		fmt.Printf("✓ %s marked done for %s (streak %d)\n", h.Name, date, h.Streak)
	} else {
		fmt.Printf("%s unmarked for %s (streak %d)\n", h.Name, date, h.Streak)
	}
	return nil
}
