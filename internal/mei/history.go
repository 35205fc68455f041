package mei

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/controle-mei/models"
)

// MonthPoint is one month on the trend chart.
type MonthPoint struct {
	Label   string          `json:"label"`
	Year    int             `json:"year"`
	Month   time.Month      `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// TrailingMonths returns exactly count points ending at the anchor's month,
// oldest first. Months without transactions are kept with zero sums so the
// chart axis stays continuous.
func TrailingMonths(txs []models.Transaction, anchor time.Time, count int) []MonthPoint {
	if count <= 0 {
		return []MonthPoint{}
	}
	first := ReferenceMonth(anchor)
	points := make([]MonthPoint, 0, count)
	for i := count - 1; i >= 0; i-- {
		m := first.AddDate(0, -i, 0)
		totals := MonthlyTotals(txs, m.Year(), m.Month())
		points = append(points, MonthPoint{
			Label:   ShortMonthName(m.Month()),
			Year:    m.Year(),
			Month:   m.Month(),
			Income:  totals.Income,
			Expense: totals.Expense,
		})
	}
	return points
}
