package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type RecurringDebt struct {
	ID        string          `json:"id" db:"id"`
	UserID    string          `json:"user_id" db:"user_id"`
	Name      string          `json:"name" db:"name"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	DueDay    int             `json:"due_day" db:"due_day"`
	Category  *string         `json:"category" db:"category"`
	IsActive  bool            `json:"is_active" db:"is_active"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}
