// Package summary derives read-only overviews from a state snapshot.
package summary

import (
	"sort"
	"time"

	"github.com/julianstephens/zenith/internal/models"
	"github.com/julianstephens/zenith/internal/state"
	"github.com/julianstephens/zenith/internal/utils"
)

// RecentLogLimit is how many activity entries the dashboard shows
const RecentLogLimit = 5

type CategoryTotal struct {
	Category string  `json:"category" yaml:"category"`
	Amount   float64 `json:"amount" yaml:"amount"`
}

type BudgetOverview struct {
	Income     float64         `json:"income" yaml:"income"`
	Expense    float64         `json:"expense" yaml:"expense"`
	Balance    float64         `json:"balance" yaml:"balance"`
	ByCategory []CategoryTotal `json:"by_category" yaml:"by_category"` // expenses only
}

// Budget totals income and expenses. Category totals are sorted by amount,
// largest first, with ties broken by name.
func Budget(txs []models.Transaction) BudgetOverview {
	var b BudgetOverview
	byCategory := make(map[string]float64)

	for _, tx := range txs {
		switch tx.Type {
		case models.TransactionIncome:
			b.Income += tx.Amount
		case models.TransactionExpense:
			b.Expense += tx.Amount
			byCategory[tx.Category] += tx.Amount
		}
	}
	b.Balance = b.Income - b.Expense

	b.ByCategory = make([]CategoryTotal, 0, len(byCategory))
	for category, amount := range byCategory {
		b.ByCategory = append(b.ByCategory, CategoryTotal{Category: category, Amount: amount})
	}
	sort.Slice(b.ByCategory, func(i, j int) bool {
		if b.ByCategory[i].Amount != b.ByCategory[j].Amount {
			return b.ByCategory[i].Amount > b.ByCategory[j].Amount
		}
		return b.ByCategory[i].Category < b.ByCategory[j].Category
	})
	return b
}

type DashboardOverview struct {
	Greeting       string               `json:"greeting" yaml:"greeting"`
	UserName       string               `json:"user_name,omitempty" yaml:"user_name,omitempty"`
	CompletedTasks int                  `json:"completed_tasks" yaml:"completed_tasks"`
	TotalTasks     int                  `json:"total_tasks" yaml:"total_tasks"`
	Balance        float64              `json:"balance" yaml:"balance"`
	Habits         int                  `json:"habits" yaml:"habits"`
	Unread         int                  `json:"unread" yaml:"unread"`
	RecentLogs     []models.ActivityLog `json:"recent_logs" yaml:"recent_logs"`
}

// Dashboard builds the home screen overview. The greeting follows the signed
// in user's timezone when it can be loaded, otherwise now's own location.
func Dashboard(snap state.Snapshot, now time.Time) DashboardOverview {
	d := DashboardOverview{
		TotalTasks: len(snap.Tasks),
		Balance:    Budget(snap.Transactions).Balance,
		Habits:     len(snap.Habits),
		Unread:     snap.UnreadCount(),
	}

	if snap.User != nil {
		d.UserName = snap.User.Name
		if loc, err := utils.LoadLocation(snap.User.Timezone); err == nil && snap.User.Timezone != "" {
			now = now.In(loc)
		}
	}
	d.Greeting = Greeting(now.Hour())

	for _, t := range snap.Tasks {
		if t.Status == models.StatusDone {
			d.CompletedTasks++
		}
	}

	n := min(RecentLogLimit, len(snap.Logs))
	d.RecentLogs = append([]models.ActivityLog{}, snap.Logs[:n]...)
	return d
}

// Greeting returns the salutation for an hour of the day (0-23)
func Greeting(hour int) string {
	switch {
	case hour < 12:
		return "Good Morning"
	case hour < 18:
		return "Good Afternoon"
	default:
		return "Good Evening"
	}
}
