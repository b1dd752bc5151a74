package state

import (
	"time"

	"github.com/julianstephens/zenith/internal/constants"
	"github.com/julianstephens/zenith/internal/models"
)

// seed returns the sample data a fresh install starts with. The habit is
// marked complete on today's date.
func seed(now time.Time) Snapshot {
	return Snapshot{
		Tasks: []models.Task{
			{ID: "1", Title: "Design system update", Status: models.StatusInProgress, Priority: models.PriorityHigh, DueDate: "2023-11-01"},
			{ID: "2", Title: "Q4 Budget Review", Status: models.StatusTodo, Priority: models.PriorityMedium, DueDate: "2023-11-05"},
		},
		Habits: []models.Habit{
			{ID: "1", Name: "Morning Meditation", Streak: 12, CompletedDates: []string{now.Format(constants.DateFormat)}},
		},
		Transactions: []models.Transaction{
			{ID: "1", Description: "Freelance Project", Amount: 1500, Type: models.TransactionIncome, Category: "Business", Date: "2023-10-25"},
		},
		Logs:          []models.ActivityLog{},
		Notifications: []models.Notification{},
	}
}
