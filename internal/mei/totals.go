package mei

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/controle-mei/models"
)

// Totals is the income/expense split of one calendar month.
type Totals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

func inMonth(t time.Time, year int, month time.Month) bool {
	y, m, _ := t.Date()
	return y == year && m == month
}

// MonthlyTotals sums the transactions dated in (year, month). Months are
// one-based, January is time.January.
func MonthlyTotals(txs []models.Transaction, year int, month time.Month) Totals {
	income, expense := decimal.Zero, decimal.Zero
	for _, t := range txs {
		if !inMonth(t.Date, year, month) {
			continue
		}
		switch t.Type {
		case models.TransactionIncome:
			income = income.Add(t.Amount)
		case models.TransactionExpense:
			expense = expense.Add(t.Amount)
		}
	}
	return Totals{
		Income:  income,
		Expense: expense,
		Balance: income.Sub(expense),
	}
}

// RecurringTotal sums the monthly amount of the active debts.
func RecurringTotal(debts []models.RecurringDebt) decimal.Decimal {
	total := decimal.Zero
	for _, d := range debts {
		if d.IsActive {
			total = total.Add(d.Amount)
		}
	}
	return total
}

// ActiveCount returns how many debts are switched on.
func ActiveCount(debts []models.RecurringDebt) int {
	n := 0
	for _, d := range debts {
		if d.IsActive {
			n++
		}
	}
	return n
}

// Forecast is what is left of the month balance once every active recurring
// debt is paid. Inactive debts never count, whatever their due day.
func Forecast(balance decimal.Decimal, debts []models.RecurringDebt) decimal.Decimal {
	return balance.Sub(RecurringTotal(debts))
}

type DebtStatus string

const (
	DebtUpcoming DebtStatus = "upcoming"
	DebtDueToday DebtStatus = "due_today"
	DebtOverdue  DebtStatus = "overdue"
)

// DebtDueStatus compares today's day of month with the debt's due day. A due
// day past the end of a short month is compared as-is.
func DebtDueStatus(today time.Time, dueDay int) DebtStatus {
	switch d := today.Day(); {
	case d > dueDay:
		return DebtOverdue
	case d == dueDay:
		return DebtDueToday
	default:
		return DebtUpcoming
	}
}
