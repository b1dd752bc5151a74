package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/zenith/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// TodayInTimezone returns today's date string (YYYY-MM-DD) in the specified timezone.
// "Today" follows the user's timezone, not the system timezone.
func TodayInTimezone(timezone string) (string, error) {
	now, err := NowInTimezone(timezone)
	if err != nil {
		return "", err
	}
	return now.Format(constants.DateFormat), nil
}

// ValidateDate checks that dateStr is a calendar date in YYYY-MM-DD form
func ValidateDate(dateStr string) error {
	if _, err := time.Parse(constants.DateFormat, dateStr); err != nil {
		return fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", dateStr)
	}
	return nil
}

// ParseDateTime parses a reminder time in loc. Accepted forms are RFC 3339,
// "YYYY-MM-DD HH:MM" and a bare "YYYY-MM-DD", which means midnight.
func ParseDateTime(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(constants.DateFormat+" "+constants.TimeFormat, value, loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(constants.DateFormat, value, loc); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q (expected YYYY-MM-DD HH:MM or RFC 3339)", value)
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
