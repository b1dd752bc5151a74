package finance

import (
	"fmt"

	"github.com/julianstephens/zenith/internal/cli"
	"github.com/julianstephens/zenith/internal/summary"
	"github.com/julianstephens/zenith/internal/utils"
)

type BudgetCmd struct{}

func (c *BudgetCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Store()
	if err != nil {
		return err
	}
	b := summary.Budget(store.Snapshot().Transactions)

	fmt.Println("Budget overview:")
	fmt.Printf("  Income:   %14s\n", utils.FormatMoney(b.Income))
	fmt.Printf("  Expenses: %14s\n", utils.FormatMoney(b.Expense))
	fmt.Printf("  Balance:  %14s\n", utils.FormatMoney(b.Balance))

	if len(b.ByCategory) > 0 {
		fmt.Println("\nSpending by category:")
		for _, ct := range b.ByCategory {
			fmt.Printf("  %-20s %14s\n", ct.Category, utils.FormatMoney(ct.Amount))
		}
	}
	return nil
}
