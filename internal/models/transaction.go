package models

import (
	"fmt"
	"time"
)

type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

func ParseTransactionType(s string) (TransactionType, error) {
	switch normalizeEnum(s) {
	case "income", "in":
		return TransactionIncome, nil
	case "expense", "out":
		return TransactionExpense, nil
	}
	return "", fmt.Errorf("invalid transaction type: %q (expected income or expense)", s)
}

// Transaction is a financial record. Amount is always a positive magnitude;
// Type carries the sign.
type Transaction struct {
	ID          string          `json:"id" yaml:"id"`
	Description string          `json:"description" yaml:"description"`
	Amount      float64         `json:"amount" yaml:"amount"`
	Type        TransactionType `json:"type" yaml:"type"`
	Category    string          `json:"category" yaml:"category"`
	Date        string          `json:"date" yaml:"date"` // YYYY-MM-DD format
}

// Signed returns the amount with the sign implied by the transaction type
func (t *Transaction) Signed() float64 {
	if t.Type == TransactionExpense {
		return -t.Amount
	}
	return t.Amount
}

func (t *Transaction) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("transaction id cannot be empty")
	}
	if t.Description == "" {
		return fmt.Errorf("transaction description cannot be empty")
	}
	if t.Amount <= 0 {
		return fmt.Errorf("transaction amount must be positive, got %v", t.Amount)
	}
	if !t.Type.Valid() {
		return fmt.Errorf("invalid transaction type: %q", t.Type)
	}
	if t.Date != "" {
		if _, err := time.Parse("2006-01-02", t.Date); err != nil {
			return fmt.Errorf("invalid date (expected YYYY-MM-DD): %w", err)
		}
	}
	return nil
}
