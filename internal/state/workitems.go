package state

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/julianstephens/zenith/internal/constants"
	"github.com/julianstephens/zenith/internal/models"
)

// AddTask appends task as given. The caller supplies the id; duplicates are
// not rejected.
func (s *Store) AddTask(task models.Task) error {
	return s.commit("add_task", func(st *Snapshot) bool {
		st.Tasks = append(st.Tasks, task)
		s.appendLog(st, constants.ActionCreateTask, task.Title)
		return true
	})
}

// UpdateTaskStatus sets the status of the first task with id. Unknown ids are
// ignored.
func (s *Store) UpdateTaskStatus(id string, status models.TaskStatus) error {
	return s.commit("update_task_status", func(st *Snapshot) bool {
		i := slices.IndexFunc(st.Tasks, func(t models.Task) bool { return t.ID == id })
		if i < 0 {
			return false
		}
		st.Tasks[i].Status = status
		s.appendLog(st, constants.ActionUpdateTask, fmt.Sprintf("Task %s moved to %s", id, status))
		return true
	})
}

// ToggleHabit adds date to the habit's completed set, or removes it when
// already present. The streak moves by one in the same direction and never
// drops below zero. Reaching a multiple of five emits a milestone
// notification.
func (s *Store) ToggleHabit(id, date string) error {
	return s.commit("toggle_habit", func(st *Snapshot) bool {
		i := slices.IndexFunc(st.Habits, func(h models.Habit) bool { return h.ID == id })
		if i < 0 {
			return false
		}

		h := &st.Habits[i]
		if h.IsCompleted(date) {
			h.CompletedDates = slices.DeleteFunc(h.CompletedDates, func(d string) bool { return d == date })
			h.Streak = max(0, h.Streak-1)
		} else {
			h.CompletedDates = append(h.CompletedDates, date)
			h.Streak++
			if h.Streak%constants.MilestoneInterval == 0 {
				s.pushNotification(st, models.Notification{
					Title:   "Habit Streak! 🔥",
					Message: fmt.Sprintf("You've hit a %d day streak on %s!", h.Streak, h.Name),
					Kind:    models.NotificationSuccess,
				})
			}
		}

		s.appendLog(st, constants.ActionToggleHabit, fmt.Sprintf("Habit %s toggled for %s", id, date))
		return true
	})
}

// AddTransaction appends tx as given
func (s *Store) AddTransaction(tx models.Transaction) error {
	return s.commit("add_transaction", func(st *Snapshot) bool {
		st.Transactions = append(st.Transactions, tx)
		s.appendLog(st, constants.ActionAddTransaction, fmt.Sprintf("%s: $%s - %s",
			strings.ToUpper(string(tx.Type)), strconv.FormatFloat(tx.Amount, 'f', -1, 64), tx.Description))
		return true
	})
}
