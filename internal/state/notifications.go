package state

import (
	"slices"
	"time"

	"github.com/julianstephens/zenith/internal/constants"
	"github.com/julianstephens/zenith/internal/models"
)

// AddNotification enqueues a new unread notification
func (s *Store) AddNotification(title, message string, kind models.NotificationKind) error {
	return s.commit("add_notification", func(st *Snapshot) bool {
		s.pushNotification(st, models.Notification{
			Title:   title,
			Message: message,
			Kind:    kind,
		})
		return true
	})
}

// CreateReminder enqueues a reminder notification. scheduledFor is stored as
// metadata; the Store itself never fires it.
func (s *Store) CreateReminder(title, message string, scheduledFor time.Time) error {
	at := scheduledFor.UTC()
	return s.commit("create_reminder", func(st *Snapshot) bool {
		s.pushNotification(st, models.Notification{
			Title:        constants.ReminderTitlePrefix + title,
			Message:      message,
			Kind:         models.NotificationReminder,
			ScheduledFor: &at,
		})
		s.appendLog(st, constants.ActionCreateReminder, title+" set for "+at.Format(time.RFC3339))
		return true
	})
}

// MarkNotificationRead flags the notification with id as read. Unknown ids
// and already-read notifications are ignored.
func (s *Store) MarkNotificationRead(id string) error {
	return s.commit("mark_notification_read", func(st *Snapshot) bool {
		i := slices.IndexFunc(st.Notifications, func(n models.Notification) bool { return n.ID == id })
		if i < 0 || st.Notifications[i].Read {
			return false
		}
		st.Notifications[i].Read = true
		return true
	})
}

// ClearNotifications removes every notification
func (s *Store) ClearNotifications() error {
	return s.commit("clear_notifications", func(st *Snapshot) bool {
		st.Notifications = []models.Notification{}
		return true
	})
}
