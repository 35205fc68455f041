package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type DasStatus string

const (
	DasPending DasStatus = "pending"
	DasPaid    DasStatus = "paid"
	DasOverdue DasStatus = "overdue"
)

// DasPayment records the monthly MEI tax for one reference month.
type DasPayment struct {
	ID             string              `json:"id" db:"id"`
	UserID         string              `json:"user_id" db:"user_id"`
	ReferenceMonth time.Time           `json:"reference_month" db:"reference_month"` // always the first day of the month
	Amount         decimal.NullDecimal `json:"amount" db:"amount"`
	Status         DasStatus           `json:"status" db:"status"`
	PaidAt         *time.Time          `json:"paid_at" db:"paid_at"`
	CreatedAt      time.Time           `json:"created_at" db:"created_at"`
}
