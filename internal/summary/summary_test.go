package summary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/zenith/internal/models"
	"github.com/julianstephens/zenith/internal/state"
)

func TestBudget(t *testing.T) {
	txs := []models.Transaction{
		{ID: "1", Description: "Salary", Amount: 3000, Type: models.TransactionIncome, Category: "Work"},
		{ID: "2", Description: "Rent", Amount: 1200, Type: models.TransactionExpense, Category: "Housing"},
		{ID: "3", Description: "Coffee", Amount: 4.5, Type: models.TransactionExpense, Category: "Food"},
		{ID: "4", Description: "Groceries", Amount: 95.5, Type: models.TransactionExpense, Category: "Food"},
		{ID: "5", Description: "Bus", Amount: 100, Type: models.TransactionExpense, Category: "Commute"},
	}

	b := Budget(txs)
	assert.Equal(t, 3000.0, b.Income)
	assert.Equal(t, 1400.0, b.Expense)
	assert.Equal(t, 1600.0, b.Balance)
	assert.Equal(t, []CategoryTotal{
		{Category: "Housing", Amount: 1200},
		{Category: "Commute", Amount: 100},
		{Category: "Food", Amount: 100},
	}, b.ByCategory)
}

func TestBudgetEmpty(t *testing.T) {
	b := Budget(nil)
	assert.Zero(t, b.Balance)
	assert.NotNil(t, b.ByCategory)
	assert.Empty(t, b.ByCategory)
}

func TestGreeting(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{0, "Good Morning"},
		{11, "Good Morning"},
		{12, "Good Afternoon"},
		{17, "Good Afternoon"},
		{18, "Good Evening"},
		{23, "Good Evening"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Greeting(tt.hour), "hour %d", tt.hour)
	}
}

func TestDashboard(t *testing.T) {
	logs := make([]models.ActivityLog, 7)
	for i := range logs {
		logs[i] = models.ActivityLog{ID: string(rune('a' + i))}
	}
	snap := state.Snapshot{
		User: &models.User{Name: "a", Timezone: "America/New_York"},
		Tasks: []models.Task{
			{ID: "1", Status: models.StatusDone},
			{ID: "2", Status: models.StatusTodo},
		},
		Habits:       []models.Habit{{ID: "1"}},
		Transactions: []models.Transaction{{Amount: 1500, Type: models.TransactionIncome}},
		Logs:         logs,
		Notifications: []models.Notification{
			{ID: "1", Read: true},
			{ID: "2"},
		},
	}

	// 15:00 UTC is 10:00 in New York in January
	d := Dashboard(snap, time.Date(2024, 1, 5, 15, 0, 0, 0, time.UTC))

	assert.Equal(t, "Good Morning", d.Greeting)
	assert.Equal(t, "a", d.UserName)
	assert.Equal(t, 1, d.CompletedTasks)
	assert.Equal(t, 2, d.TotalTasks)
	assert.Equal(t, 1500.0, d.Balance)
	assert.Equal(t, 1, d.Habits)
	assert.Equal(t, 1, d.Unread)
	require.Len(t, d.RecentLogs, RecentLogLimit)
	assert.Equal(t, "a", d.RecentLogs[0].ID)
}

func TestDashboardAnonymousUsesGivenTime(t *testing.T) {
	d := Dashboard(state.Snapshot{}, time.Date(2024, 1, 5, 19, 0, 0, 0, time.UTC))
	assert.Equal(t, "Good Evening", d.Greeting)
	assert.Empty(t, d.UserName)
	assert.Empty(t, d.RecentLogs)
}
