package mei

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/controle-mei/models"
)

var ErrPaymentExists = errors.New("das payment already registered for this month")

// ReferenceMonth normalises t to the first day of its month.
func ReferenceMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

// MonthKey is the canonical "YYYY-MM-01" key of t's reference month.
func MonthKey(t time.Time) string {
	return ReferenceMonth(t).Format(time.DateOnly)
}

// FindCurrentPayment returns the first payment recorded for referenceMonth,
// or nil. Nothing prevents two records for the same month at this level; when
// that happens the first one in iteration order wins.
func FindCurrentPayment(payments []models.DasPayment, referenceMonth time.Time) *models.DasPayment {
	key := MonthKey(referenceMonth)
	for i := range payments {
		if payments[i].ReferenceMonth.Format(time.DateOnly) == key {
			p := payments[i]
			return &p
		}
	}
	return nil
}

type CommandKind string

const (
	CommandInsert CommandKind = "insert"
	CommandUpdate CommandKind = "update"
)

// PaymentCommand is the write a store has to perform for a DAS action.
// For updates Payment.ID names the row and only status, paid_at and amount
// are written.
type PaymentCommand struct {
	Kind    CommandKind
	Payment models.DasPayment
}

// PaymentPolicy builds DAS writes. DefaultAmount is the flat monthly value
// used when the caller gives none; it comes from configuration.
type PaymentPolicy struct {
	DefaultAmount decimal.Decimal
	Now           func() time.Time
}

func NewPaymentPolicy(defaultAmount decimal.Decimal) PaymentPolicy {
	return PaymentPolicy{DefaultAmount: defaultAmount, Now: time.Now}
}

func (p PaymentPolicy) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}

func (p PaymentPolicy) amountOrDefault(amount *decimal.Decimal) decimal.NullDecimal {
	if amount == nil {
		return decimal.NewNullDecimal(p.DefaultAmount)
	}
	return decimal.NewNullDecimal(*amount)
}

// MarkPaid updates the month's record in place when there is one, so marking
// twice never duplicates the row, and inserts a paid record otherwise.
func (p PaymentPolicy) MarkPaid(existing *models.DasPayment, userID string, referenceMonth time.Time, amount *decimal.Decimal) PaymentCommand {
	now := p.now()
	if existing != nil {
		updated := *existing
		updated.Status = models.DasPaid
		updated.PaidAt = &now
		updated.Amount = p.amountOrDefault(amount)
		return PaymentCommand{Kind: CommandUpdate, Payment: updated}
	}
	return PaymentCommand{
		Kind: CommandInsert,
		Payment: models.DasPayment{
			UserID:         userID,
			ReferenceMonth: ReferenceMonth(referenceMonth),
			Amount:         p.amountOrDefault(amount),
			Status:         models.DasPaid,
			PaidAt:         &now,
		},
	}
}

// CreatePending registers the month as pending. It refuses when the month
// already has a record of any status.
func (p PaymentPolicy) CreatePending(existing *models.DasPayment, userID string, referenceMonth time.Time, amount *decimal.Decimal) (PaymentCommand, error) {
	if existing != nil {
		return PaymentCommand{}, ErrPaymentExists
	}
	return PaymentCommand{
		Kind: CommandInsert,
		Payment: models.DasPayment{
			UserID:         userID,
			ReferenceMonth: ReferenceMonth(referenceMonth),
			Amount:         p.amountOrDefault(amount),
			Status:         models.DasPending,
		},
	}, nil
}
