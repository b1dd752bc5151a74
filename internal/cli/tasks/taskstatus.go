package tasks

import (
	"fmt"

	"github.com/julianstephens/zenith/internal/cli"
	"github.com/julianstephens/zenith/internal/errors"
	"github.com/julianstephens/zenith/internal/models"
)

type TaskStatusCmd struct {
	ID     string `arg:"" help:"Task ID."`
	Status string `arg:"" help:"New status (todo|in-progress|done)."`
}

func (c *TaskStatusCmd) Run(ctx *cli.Context) error {
	status, err := models.ParseTaskStatus(c.Status)
	if err != nil {
		return err
	}

	store, err := ctx.Store()
	if err != nil {
		return err
	}
	task, ok := store.Snapshot().FindTask(c.ID)
	if !ok {
		return fmt.Errorf("task %s: %w", c.ID, errors.ErrNotFound)
	}

	if err := store.UpdateTaskStatus(c.ID, status); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	fmt.Printf("Moved %q from %s to %s\n", task.Title, task.Status, status)
	return nil
}
