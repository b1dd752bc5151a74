package system

import (
	"github.com/julianstephens/zenith/internal/cli"
	"github.com/julianstephens/zenith/internal/tui"
)

// TuiCmd opens the interactive terminal UI
type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Store()
	if err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()
	return tui.Run(store)
}
