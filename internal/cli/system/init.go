package system

import (
	"fmt"

	"github.com/julianstephens/zenith/internal/cli"
)

type InitCmd struct {
	Force bool `help:"Discard existing data and restore the sample data."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if err := ctx.Provider.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized zenith storage at: %s\n", ctx.Provider.GetConfigPath())

	if !c.Force {
		return nil
	}

	// Keep a copy of whatever is about to be discarded
	ctx.PerformAutomaticBackup()

	store, err := ctx.Store()
	if err != nil {
		return err
	}
	if err := store.Reset(); err != nil {
		return fmt.Errorf("failed to reset data: %w", err)
	}
	fmt.Println("Existing data replaced with the sample data.")
	return nil
}
