package models

import (
	"fmt"
	"time"
)

type TaskStatus string

const (
	StatusTodo       TaskStatus = "Todo"
	StatusInProgress TaskStatus = "In Progress"
	StatusDone       TaskStatus = "Done"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
)

type Task struct {
	ID       string       `json:"id" yaml:"id"`
	Title    string       `json:"title" yaml:"title"`
	Status   TaskStatus   `json:"status" yaml:"status"`
	Priority TaskPriority `json:"priority" yaml:"priority"`
	DueDate  string       `json:"due_date" yaml:"due_date"` // YYYY-MM-DD format
}

// Valid reports whether s is one of the known task statuses
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Next returns the status that follows s in the Todo → In Progress → Done cycle.
// Done wraps back to Todo.
func (s TaskStatus) Next() TaskStatus {
	switch s {
	case StatusTodo:
		return StatusInProgress
	case StatusInProgress:
		return StatusDone
	default:
		return StatusTodo
	}
}

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ParseTaskStatus accepts the display form ("In Progress") as well as the
// short forms used on the command line ("todo", "in-progress", "done").
func ParseTaskStatus(s string) (TaskStatus, error) {
	switch normalizeEnum(s) {
	case "todo":
		return StatusTodo, nil
	case "inprogress", "progress", "doing":
		return StatusInProgress, nil
	case "done", "complete", "completed":
		return StatusDone, nil
	}
	return "", fmt.Errorf("invalid task status: %q (expected todo, in-progress or done)", s)
}

func ParseTaskPriority(s string) (TaskPriority, error) {
	switch normalizeEnum(s) {
	case "low":
		return PriorityLow, nil
	case "medium", "med":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	}
	return "", fmt.Errorf("invalid task priority: %q (expected low, medium or high)", s)
}

func (t *Task) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("task id cannot be empty")
	}
	if t.Title == "" {
		return fmt.Errorf("task title cannot be empty")
	}
	if !t.Status.Valid() {
		return fmt.Errorf("invalid task status: %q", t.Status)
	}
	if !t.Priority.Valid() {
		return fmt.Errorf("invalid task priority: %q", t.Priority)
	}
	if t.DueDate != "" {
		if _, err := time.Parse("2006-01-02", t.DueDate); err != nil {
			return fmt.Errorf("invalid due date (expected YYYY-MM-DD): %w", err)
		}
	}
	return nil
}
