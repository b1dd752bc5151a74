package tasks

import (
	"fmt"

	"github.com/julianstephens/zenith/internal/cli"
	"github.com/julianstephens/zenith/internal/models"
)

type TaskListCmd struct {
	Status string `short:"s" help:"Only show tasks with this status (todo|in-progress|done)."`
}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
	var filter models.TaskStatus
	if c.Status != "" {
		var err error
		if filter, err = models.ParseTaskStatus(c.Status); err != nil {
			return err
		}
	}

	store, err := ctx.Store()
	if err != nil {
		return err
	}

	shown := 0
	for _, task := range store.Snapshot().Tasks {
		if filter != "" && task.Status != filter {
			continue
		}
		if shown == 0 {
			fmt.Println("Tasks:")
		}
		fmt.Printf("  %s\n", cli.FormatTask(task))
		shown++
	}
	if shown == 0 {
		fmt.Println("No tasks found")
	}
	return nil
}
