package models

import (
	"fmt"
	"time"
)

type NotificationKind string

const (
	NotificationInfo     NotificationKind = "info"
	NotificationSuccess  NotificationKind = "success"
	NotificationWarning  NotificationKind = "warning"
	NotificationError    NotificationKind = "error"
	NotificationReminder NotificationKind = "reminder"
)

func (k NotificationKind) Valid() bool {
	switch k {
	case NotificationInfo, NotificationSuccess, NotificationWarning, NotificationError, NotificationReminder:
		return true
	}
	return false
}

func ParseNotificationKind(s string) (NotificationKind, error) {
	k := NotificationKind(normalizeEnum(s))
	if !k.Valid() {
		return "", fmt.Errorf("invalid notification kind: %q", s)
	}
	return k, nil
}

type Notification struct {
	ID           string           `json:"id" yaml:"id"`
	Title        string           `json:"title" yaml:"title"`
	Message      string           `json:"message" yaml:"message"`
	Kind         NotificationKind `json:"kind" yaml:"kind"`
	Timestamp    time.Time        `json:"timestamp" yaml:"timestamp"`
	Read         bool             `json:"read" yaml:"read"`
	ScheduledFor *time.Time       `json:"scheduled_for,omitempty" yaml:"scheduled_for,omitempty"` // reminders only
}

// IsReminder reports whether the notification carries a schedule
func (n *Notification) IsReminder() bool {
	return n.Kind == NotificationReminder && n.ScheduledFor != nil
}

// IsDue reports whether a reminder's scheduled time has been reached
func (n *Notification) IsDue(now time.Time) bool {
	return n.IsReminder() && !n.ScheduledFor.After(now)
}
