package models

import (
	"fmt"
	"slices"
	"time"
)

// Habit tracks a recurring activity. Streak is a counter moved by toggles; it
// is not recomputed from CompletedDates.
type Habit struct {
	ID             string   `json:"id" yaml:"id"`
	Name           string   `json:"name" yaml:"name"`
	Streak         int      `json:"streak" yaml:"streak"`
	CompletedDates []string `json:"completed_dates" yaml:"completed_dates"` // YYYY-MM-DD, unique
}

// IsCompleted reports whether date is in the completed set
func (h *Habit) IsCompleted(date string) bool {
	return slices.Contains(h.CompletedDates, date)
}

// SortedDates returns the completed dates in chronological order without
// touching the stored order.
func (h *Habit) SortedDates() []string {
	dates := slices.Clone(h.CompletedDates)
	slices.Sort(dates)
	return dates
}

func (h *Habit) Validate() error {
	if h.ID == "" {
		return fmt.Errorf("habit id cannot be empty")
	}
	if h.Name == "" {
		return fmt.Errorf("habit name cannot be empty")
	}
	if h.Streak < 0 {
		return fmt.Errorf("habit streak cannot be negative: %d", h.Streak)
	}
	seen := make(map[string]bool, len(h.CompletedDates))
	for _, d := range h.CompletedDates {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return fmt.Errorf("invalid completed date %q (expected YYYY-MM-DD): %w", d, err)
		}
		if seen[d] {
			return fmt.Errorf("duplicate completed date %q", d)
		}
		seen[d] = true
	}
	return nil
}
