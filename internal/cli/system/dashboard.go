package system

import (
	"fmt"
	"time"

	"github.com/julianstephens/zenith/internal/cli"
	"github.com/julianstephens/zenith/internal/summary"
	"github.com/julianstephens/zenith/internal/utils"
)

type DashboardCmd struct{}

func (c *DashboardCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Store()
	if err != nil {
		return err
	}
	now := time.Now()
	d := summary.Dashboard(store.Snapshot(), now)

	if d.UserName != "" {
		fmt.Printf("%s, %s.\n\n", d.Greeting, d.UserName)
	} else {
		fmt.Printf("%s.\n\n", d.Greeting)
	}
	fmt.Printf("  Tasks completed: %d/%d\n", d.CompletedTasks, d.TotalTasks)
	fmt.Printf("  Balance:         %s\n", utils.FormatMoney(d.Balance))
	fmt.Printf("  Habits tracked:  %d\n", d.Habits)
	fmt.Printf("  Unread:          %d\n", d.Unread)

	if len(d.RecentLogs) > 0 {
		fmt.Println("\nRecent activity:")
		for _, l := range d.RecentLogs {
			fmt.Printf("  %-16s %s", cli.RelTime(l.Timestamp, now), l.Action)
			if l.Details != "" {
				fmt.Printf(" - %s", l.Details)
			}
			fmt.Println()
		}
	}
	return nil
}
