package models

import "time"

// ActivityLog is one immutable audit trail entry
type ActivityLog struct {
	ID        string    `json:"id" yaml:"id"`
	UserID    string    `json:"user_id" yaml:"user_id"`
	Action    string    `json:"action" yaml:"action"`
	Details   string    `json:"details,omitempty" yaml:"details,omitempty"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Device    string    `json:"device" yaml:"device"`
}
