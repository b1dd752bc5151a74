package models

import (
	"strings"
	"time"
)

type Preferences struct {
	Theme              string `json:"theme" yaml:"theme"` // "light" or "dark"
	EmailNotifications bool   `json:"email_notifications" yaml:"email_notifications"`
}

type User struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Email       string      `json:"email" yaml:"email"`
	Avatar      string      `json:"avatar" yaml:"avatar"`
	Timezone    string      `json:"timezone" yaml:"timezone"`                     // IANA name
	Location    string      `json:"location,omitempty" yaml:"location,omitempty"` // free-form, wins over City/Country
	City        string      `json:"city,omitempty" yaml:"city,omitempty"`
	Country     string      `json:"country,omitempty" yaml:"country,omitempty"`
	CreatedAt   time.Time   `json:"created_at" yaml:"created_at"`
	Preferences Preferences `json:"preferences" yaml:"preferences"`
}

// DisplayLocation returns the free-form location if set, otherwise "City, Country"
func (u *User) DisplayLocation() string {
	if u.Location != "" {
		return u.Location
	}
	parts := make([]string, 0, 2)
	for _, p := range []string{u.City, u.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// ProfileUpdate is a partial User. Nil fields are left untouched; Preferences
// is replaced as a whole when present.
type ProfileUpdate struct {
	Name        *string
	Email       *string
	Avatar      *string
	Timezone    *string
	Location    *string
	City        *string
	Country     *string
	Preferences *Preferences
}

// Apply merges the update into u and returns the result along with the names
// of the fields the update carried, in declaration order.
func (p ProfileUpdate) Apply(u User) (User, []string) {
	var fields []string
	set := func(dst *string, src *string, name string) {
		if src == nil {
			return
		}
		*dst = *src
		fields = append(fields, name)
	}
	set(&u.Name, p.Name, "name")
	set(&u.Email, p.Email, "email")
	set(&u.Avatar, p.Avatar, "avatar")
	set(&u.Timezone, p.Timezone, "timezone")
	set(&u.Location, p.Location, "location")
	set(&u.City, p.City, "city")
	set(&u.Country, p.Country, "country")
	if p.Preferences != nil {
		u.Preferences = *p.Preferences
		fields = append(fields, "preferences")
	}
	return u, fields
}
