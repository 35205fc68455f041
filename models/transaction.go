package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

// Transaction is a single ledger entry. Amount is always a magnitude, the
// sign comes from Type.
type Transaction struct {
	ID          string          `json:"id" db:"id"`
	UserID      string          `json:"user_id" db:"user_id"`
	Type        TransactionType `json:"type" db:"type"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	Date        time.Time       `json:"transaction_date" db:"transaction_date"`
	Category    *string         `json:"category" db:"category"`
	Description *string         `json:"description" db:"description"`
	FileURL     *string         `json:"file_url" db:"file_url"` // storage path, not a public URL
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

func (t Transaction) HasDocument() bool {
	return t.FileURL != nil && *t.FileURL != ""
}
