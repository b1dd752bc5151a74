package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/zenith/internal/constants"
	"github.com/julianstephens/zenith/internal/models"
	"github.com/julianstephens/zenith/internal/state"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateID        ConflictType = "duplicate_id"
	ConflictMissingField       ConflictType = "missing_field"
	ConflictInvalidDate        ConflictType = "invalid_date"
	ConflictInvalidEnum        ConflictType = "invalid_enum"
	ConflictNonPositiveAmount  ConflictType = "non_positive_amount"
	ConflictStreakExceedsDates ConflictType = "streak_exceeds_dates"
	ConflictNegativeStreak     ConflictType = "negative_streak"
	ConflictDuplicateDate      ConflictType = "duplicate_completed_date"
	ConflictOrphanedSession    ConflictType = "orphaned_session"
	ConflictMissingSchedule    ConflictType = "missing_schedule"
)

// Conflict represents one inconsistency found in the state
type Conflict struct {
	Type        ConflictType
	Description string
	Collection  string   // "tasks", "habits", ...
	IDs         []string // ids of the entities involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

func (vr *ValidationResult) add(t ConflictType, collection string, ids []string, format string, args ...any) {
	vr.Conflicts = append(vr.Conflicts, Conflict{
		Type:        t,
		Description: fmt.Sprintf(format, args...),
		Collection:  collection,
		IDs:         ids,
	})
}

// Validator checks a snapshot for data the store accepts as given but that
// callers are expected to keep consistent.
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// Check runs every validation over snap
func Check(snap state.Snapshot) ValidationResult {
	v := New()
	var result ValidationResult
	for _, r := range []ValidationResult{
		v.ValidateSession(snap),
		v.ValidateTasks(snap.Tasks),
		v.ValidateHabits(snap.Habits),
		v.ValidateTransactions(snap.Transactions),
		v.ValidateNotifications(snap.Notifications),
	} {
		result.Conflicts = append(result.Conflicts, r.Conflicts...)
	}
	return result
}

func (v *Validator) ValidateSession(snap state.Snapshot) ValidationResult {
	var result ValidationResult
	if snap.IsAuthenticated && snap.User == nil {
		result.add(ConflictOrphanedSession, "user", nil, "Session is marked authenticated but no user is stored")
	}
	return result
}

func (v *Validator) ValidateTasks(tasks []models.Task) ValidationResult {
	var result ValidationResult
	seen := make(map[string]int)

	for _, t := range tasks {
		seen[t.ID]++
		if seen[t.ID] == 2 {
			result.add(ConflictDuplicateID, "tasks", []string{t.ID}, "Duplicate task id %q", t.ID)
		}
		if strings.TrimSpace(t.Title) == "" {
			result.add(ConflictMissingField, "tasks", []string{t.ID}, "Task %q has an empty title", t.ID)
		}
		if !t.Status.Valid() {
			result.add(ConflictInvalidEnum, "tasks", []string{t.ID}, "Task %q has unknown status %q", t.ID, t.Status)
		}
		if !t.Priority.Valid() {
			result.add(ConflictInvalidEnum, "tasks", []string{t.ID}, "Task %q has unknown priority %q", t.ID, t.Priority)
		}
		if t.DueDate != "" && !isValidDate(t.DueDate) {
			result.add(ConflictInvalidDate, "tasks", []string{t.ID}, "Task %q has invalid due date %q", t.ID, t.DueDate)
		}
	}
	return result
}

func (v *Validator) ValidateHabits(habits []models.Habit) ValidationResult {
	var result ValidationResult
	seen := make(map[string]int)

	for _, h := range habits {
		seen[h.ID]++
		if seen[h.ID] == 2 {
			result.add(ConflictDuplicateID, "habits", []string{h.ID}, "Duplicate habit id %q", h.ID)
		}
		if h.Streak < 0 {
			result.add(ConflictNegativeStreak, "habits", []string{h.ID}, "Habit %q has negative streak %d", h.Name, h.Streak)
		}

		dates := make(map[string]bool, len(h.CompletedDates))
		for _, d := range h.CompletedDates {
			if !isValidDate(d) {
				result.add(ConflictInvalidDate, "habits", []string{h.ID}, "Habit %q has invalid completed date %q", h.Name, d)
			}
			if dates[d] {
				result.add(ConflictDuplicateDate, "habits", []string{h.ID}, "Habit %q lists %s more than once", h.Name, d)
			}
			dates[d] = true
		}

		// The streak is a counter, so it can drift from the date set; it can
		// never legitimately exceed it.
		if h.Streak > len(dates) {
			result.add(ConflictStreakExceedsDates, "habits", []string{h.ID},
				"Habit %q has streak %d but only %d completed dates", h.Name, h.Streak, len(dates))
		}
	}
	return result
}

func (v *Validator) ValidateTransactions(txs []models.Transaction) ValidationResult {
	var result ValidationResult
	seen := make(map[string]int)

	for _, tx := range txs {
		seen[tx.ID]++
		if seen[tx.ID] == 2 {
			result.add(ConflictDuplicateID, "transactions", []string{tx.ID}, "Duplicate transaction id %q", tx.ID)
		}
		if tx.Amount <= 0 {
			result.add(ConflictNonPositiveAmount, "transactions", []string{tx.ID},
				"Transaction %q has non-positive amount %v", tx.Description, tx.Amount)
		}
		if !tx.Type.Valid() {
			result.add(ConflictInvalidEnum, "transactions", []string{tx.ID}, "Transaction %q has unknown type %q", tx.Description, tx.Type)
		}
		if tx.Date != "" && !isValidDate(tx.Date) {
			result.add(ConflictInvalidDate, "transactions", []string{tx.ID}, "Transaction %q has invalid date %q", tx.Description, tx.Date)
		}
	}
	return result
}

func (v *Validator) ValidateNotifications(notifications []models.Notification) ValidationResult {
	var result ValidationResult
	for _, n := range notifications {
		if !n.Kind.Valid() {
			result.add(ConflictInvalidEnum, "notifications", []string{n.ID}, "Notification %q has unknown kind %q", n.Title, n.Kind)
		}
		if n.Kind == models.NotificationReminder && n.ScheduledFor == nil {
			result.add(ConflictMissingSchedule, "notifications", []string{n.ID}, "Reminder %q has no scheduled time", n.Title)
		}
	}
	return result
}

func isValidDate(s string) bool {
	_, err := time.Parse(constants.DateFormat, s)
	return err == nil
}
