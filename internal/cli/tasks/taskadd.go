package tasks

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/zenith/internal/cli"
	"github.com/julianstephens/zenith/internal/models"
	"github.com/julianstephens/zenith/internal/utils"
)

type TaskAddCmd struct {
	Title    string `arg:"" help:"Task title."`
	Priority string `short:"p" help:"Priority (low|medium|high)." default:"medium"`
	Due      string `short:"d" help:"Due date (YYYY-MM-DD)."`
}

func (c *TaskAddCmd) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("title cannot be empty")
	}
	if _, err := models.ParseTaskPriority(c.Priority); err != nil {
		return err
	}
	if c.Due != "" {
		if err := utils.ValidateDate(c.Due); err != nil {
			return fmt.Errorf("invalid due date: %w", err)
		}
	}
	return nil
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	if err := c.Validate(); err != nil {
		return err
	}
	priority, _ := models.ParseTaskPriority(c.Priority)

	task := models.Task{
		ID:       uuid.NewString(),
		Title:    strings.TrimSpace(c.Title),
		Status:   models.StatusTodo,
		Priority: priority,
		DueDate:  c.Due,
	}

	store, err := ctx.Store()
	if err != nil {
		return err
	}
	if err := store.AddTask(task); err != nil {
		return fmt.Errorf("failed to add task: %w", err)
	}

	fmt.Printf("Added task: %s (ID: %s)\n", task.Title, task.ID)
	return nil
}
