package locale

import (
	"os"
	"time"
)

// Provider supplies the ambient timezone and a coarse location guess used to
// populate new users.
type Provider interface {
	Timezone() string
	Location() (city, country string)
}

const (
	DefaultCity    = "New York"
	DefaultCountry = "USA"
)

// System reads the timezone from the TZ environment variable or the local
// zone. Location is a fixed guess; no lookup service is consulted.
type System struct{}

func (System) Timezone() string {
	if tz := os.Getenv("TZ"); tz != "" {
		if _, err := time.LoadLocation(tz); err == nil {
			return tz
		}
	}
	name := time.Local.String()
	if name == "Local" || name == "" {
		return "UTC"
	}
	return name
}

func (System) Location() (string, string) {
	return DefaultCity, DefaultCountry
}

// Static is a fixed Provider, handy for tests and for users who configure
// their locale explicitly.
type Static struct {
	TZ      string
	City    string
	Country string
}

func (s Static) Timezone() string {
	if s.TZ == "" {
		return "UTC"
	}
	return s.TZ
}

func (s Static) Location() (string, string) {
	return s.City, s.Country
}
