package state

import (
	"slices"

	"github.com/julianstephens/zenith/internal/models"
)

// Snapshot is a detached copy of the whole application state. Callers may
// modify it freely; nothing they do is visible to the Store.
type Snapshot struct {
	User            *models.User
	IsAuthenticated bool
	Token           string
	Tasks           []models.Task
	Habits          []models.Habit
	Transactions    []models.Transaction
	Logs            []models.ActivityLog
	Notifications   []models.Notification
}

func (s Snapshot) clone() Snapshot {
	c := Snapshot{
		IsAuthenticated: s.IsAuthenticated,
		Token:           s.Token,
		Tasks:           slices.Clone(s.Tasks),
		Transactions:    slices.Clone(s.Transactions),
		Logs:            slices.Clone(s.Logs),
	}
	if s.User != nil {
		u := *s.User
		c.User = &u
	}

	if s.Habits != nil {
		c.Habits = make([]models.Habit, len(s.Habits))
		for i, h := range s.Habits {
			h.CompletedDates = slices.Clone(h.CompletedDates)
			c.Habits[i] = h
		}
	}

	if s.Notifications != nil {
		c.Notifications = make([]models.Notification, len(s.Notifications))
		for i, n := range s.Notifications {
			if n.ScheduledFor != nil {
				at := *n.ScheduledFor
				n.ScheduledFor = &at
			}
			c.Notifications[i] = n
		}
	}
	return c
}

// UserID returns the id of the signed-in user, or "" when anonymous
func (s Snapshot) UserID() string {
	if s.User == nil || !s.IsAuthenticated {
		return ""
	}
	return s.User.ID
}

// FindTask returns the first task with id
func (s Snapshot) FindTask(id string) (models.Task, bool) {
	i := slices.IndexFunc(s.Tasks, func(t models.Task) bool { return t.ID == id })
	if i < 0 {
		return models.Task{}, false
	}
	return s.Tasks[i], true
}

// FindHabit returns the first habit with id
func (s Snapshot) FindHabit(id string) (models.Habit, bool) {
	i := slices.IndexFunc(s.Habits, func(h models.Habit) bool { return h.ID == id })
	if i < 0 {
		return models.Habit{}, false
	}
	return s.Habits[i], true
}

// UnreadCount returns the number of unread notifications
func (s Snapshot) UnreadCount() int {
	n := 0
	for _, notif := range s.Notifications {
		if !notif.Read {
			n++
		}
	}
	return n
}
