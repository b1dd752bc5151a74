package finance

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/zenith/internal/cli"
	"github.com/julianstephens/zenith/internal/models"
	"github.com/julianstephens/zenith/internal/utils"
)

type TxAddCmd struct {
	Description string  `arg:"" help:"What the money was for."`
	Amount      float64 `arg:"" help:"Amount (positive)."`
	Type        string  `short:"t" help:"Transaction type (income|expense)." required:""`
	Category    string  `short:"c" help:"Category." required:""`
	Date        string  `short:"d" help:"Date (YYYY-MM-DD). Defaults to today."`
}

func (c *TxAddCmd) Validate() error {
	if strings.TrimSpace(c.Description) == "" {
		return fmt.Errorf("description cannot be empty")
	}
	if c.Amount <= 0 {
		return fmt.Errorf("amount must be greater than zero")
	}
	if _, err := models.ParseTransactionType(c.Type); err != nil {
		return err
	}
	if c.Date != "" {
		if err := utils.ValidateDate(c.Date); err != nil {
			return err
		}
	}
	return nil
}

func (c *TxAddCmd) Run(ctx *cli.Context) error {
	if err := c.Validate(); err != nil {
		return err
	}
	txType, _ := models.ParseTransactionType(c.Type)

	store, err := ctx.Store()
	if err != nil {
		return err
	}

	date := c.Date
	if date == "" {
		date = cli.Today(store.Snapshot(), time.Now())
	}
	tx := models.Transaction{
		ID:          uuid.NewString(),
		Description: strings.TrimSpace(c.Description),
		Amount:      c.Amount,
		Type:        txType,
		Category:    strings.TrimSpace(c.Category),
		Date:        date,
	}
	if err := store.AddTransaction(tx); err != nil {
		return fmt.Errorf("failed to add transaction: %w", err)
	}

	fmt.Printf("Recorded %s of %s: %s (ID: %s)\n", tx.Type, utils.FormatMoney(tx.Amount), tx.Description, tx.ID)
	return nil
}

type TxListCmd struct{}

func (c *TxListCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Store()
	if err != nil {
		return err
	}
	txs := store.Snapshot().Transactions
	if len(txs) == 0 {
		fmt.Println("No transactions found")
		return nil
	}

	fmt.Println("Transactions:")
	for _, tx := range txs {
		fmt.Printf("  %s  %-30s %-12s %12s\n", tx.Date, tx.Description, tx.Category, utils.FormatMoney(tx.Signed()))
	}
	return nil
}
