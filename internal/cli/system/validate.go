package system

import (
	"fmt"

	"github.com/julianstephens/zenith/internal/cli"
	"github.com/julianstephens/zenith/internal/validation"
)

type ValidateCmd struct {
	Strict bool `help:"Exit with an error when any conflict is found."`
}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Store()
	if err != nil {
		return err
	}

	result := validation.Check(store.Snapshot())
	fmt.Print(result.FormatReport())
	if !result.HasConflicts() {
		fmt.Println()
		return nil
	}
	if c.Strict {
		return fmt.Errorf("%d conflict(s) found", len(result.Conflicts))
	}
	return nil
}
