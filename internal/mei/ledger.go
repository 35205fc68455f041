package mei

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/valeriaulyamaeva/controle-mei/models"
)

// YearMonth identifies a calendar month, one-based.
type YearMonth struct {
	Year  int
	Month time.Month
}

func YearMonthOf(t time.Time) YearMonth {
	y, m, _ := t.Date()
	return YearMonth{Year: y, Month: m}
}

// ParseYearMonth reads "YYYY-MM".
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid month %q: %w", s, err)
	}
	return YearMonthOf(t), nil
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

func (ym YearMonth) Contains(t time.Time) bool {
	return inMonth(t, ym.Year, ym.Month)
}

// Filter is the ledger search. A zero Filter matches everything.
type Filter struct {
	Search string
	Type   models.TransactionType // empty means both kinds
	Month  *YearMonth
}

func containsFold(field *string, needle string) bool {
	return field != nil && strings.Contains(strings.ToLower(*field), needle)
}

func (f Filter) Match(t models.Transaction) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !containsFold(t.Description, needle) && !containsFold(t.Category, needle) {
			return false
		}
	}
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if f.Month != nil && !f.Month.Contains(t.Date) {
		return false
	}
	return true
}

// FilterTransactions keeps the matching transactions in their original order.
func FilterTransactions(txs []models.Transaction, f Filter) []models.Transaction {
	out := make([]models.Transaction, 0, len(txs))
	for _, t := range txs {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// WithDocuments keeps the transactions that carry an attached document.
func WithDocuments(txs []models.Transaction) []models.Transaction {
	out := make([]models.Transaction, 0)
	for _, t := range txs {
		if t.HasDocument() {
			out = append(out, t)
		}
	}
	return out
}

// DocumentMonths lists the distinct months that have attachments, newest first.
func DocumentMonths(txs []models.Transaction) []string {
	seen := make(map[string]struct{})
	for _, t := range txs {
		if !t.HasDocument() {
			continue
		}
		seen[YearMonthOf(t.Date).String()] = struct{}{}
	}
	months := make([]string, 0, len(seen))
	for m := range seen {
		months = append(months, m)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months
}

// Recent returns at most n transactions from the head of an already sorted slice.
func Recent(txs []models.Transaction, n int) []models.Transaction {
	if n < 0 {
		n = 0
	}
	if len(txs) < n {
		n = len(txs)
	}
	return txs[:n]
}
