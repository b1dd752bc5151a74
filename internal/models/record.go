package models

import "time"

// RecordInfo describes a stored record without its payload
type RecordInfo struct {
	Name      string    `json:"name"`
	Size      int       `json:"size"`
	UpdatedAt time.Time `json:"updated_at"`
}
