package tui

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/zenith/internal/models"
)

type taskItem struct {
	task models.Task
}

func (i taskItem) Title() string {
	mark := "○"
	switch i.task.Status {
	case models.StatusInProgress:
		mark = "◐"
	case models.StatusDone:
		mark = "●"
	}
	return mark + " " + i.task.Title
}

func (i taskItem) Description() string {
	desc := fmt.Sprintf("%s · %s priority", i.task.Status, i.task.Priority)
	if i.task.DueDate != "" {
		desc += " · due " + i.task.DueDate
	}
	return desc
}

func (i taskItem) FilterValue() string { return i.task.Title }

type habitItem struct {
	habit     models.Habit
	doneToday bool
}

func (i habitItem) Title() string {
	if i.doneToday {
		return "✓ " + i.habit.Name
	}
	return "○ " + i.habit.Name
}

func (i habitItem) Description() string {
	today := "not completed today"
	if i.doneToday {
		today = "completed today"
	}
	return fmt.Sprintf("🔥 %d day streak · %s", i.habit.Streak, today)
}

func (i habitItem) FilterValue() string { return i.habit.Name }

type notificationItem struct {
	n   models.Notification
	now time.Time
}

func (i notificationItem) Title() string {
	if i.n.Read {
		return "  " + i.n.Title
	}
	return "• " + i.n.Title
}

func (i notificationItem) Description() string {
	desc := i.n.Message + " · " + humanize.RelTime(i.n.Timestamp, i.now, "ago", "from now")
	if i.n.ScheduledFor != nil {
		desc += " · due " + humanize.RelTime(*i.n.ScheduledFor, i.now, "ago", "from now")
	}
	return desc
}

func (i notificationItem) FilterValue() string { return i.n.Title }
