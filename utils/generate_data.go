package utils

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/controle-mei/internal/mei"
	"github.com/valeriaulyamaeva/controle-mei/models"
)

func price(f *gofakeit.Faker, min, max float64) decimal.Decimal {
	return decimal.NewFromFloat(f.Price(min, max)).Round(2)
}

// GenerateTransactions spreads n random entries over the months ending at
// anchor. About one in four expenses carries a fake document path.
func GenerateTransactions(f *gofakeit.Faker, userID string, anchor time.Time, months, n int) []models.Transaction {
	if months < 1 {
		months = 1
	}
	first := mei.ReferenceMonth(anchor).AddDate(0, -(months - 1), 0)
	last := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, time.UTC)

	txs := make([]models.Transaction, 0, n)
	for i := 0; i < n; i++ {
		t := models.Transaction{
			UserID: userID,
			Date:   f.DateRange(first, last.Add(time.Hour)).Truncate(24 * time.Hour),
		}
		if f.Number(0, 2) == 0 {
			t.Type = models.TransactionIncome
			t.Amount = price(f, 150, 4000)
			category := f.RandomString(mei.IncomeCategories)
			t.Category = &category
		} else {
			t.Type = models.TransactionExpense
			t.Amount = price(f, 10, 900)
			category := f.RandomString(mei.ExpenseCategories)
			t.Category = &category
			if f.Number(0, 3) == 0 {
				path := fmt.Sprintf("%s/%d.pdf", userID, t.Date.UnixMilli()+int64(i))
				t.FileURL = &path
			}
		}
		if f.Bool() {
			description := f.Sentence(3)
			t.Description = &description
		}
		txs = append(txs, t)
	}
	return txs
}

var debtNames = []string{"Aluguel", "Internet", "Celular", "Contador", "Energia", "Software de gestão", "Plano de saúde"}

// GenerateRecurringDebts returns up to n debts with distinct names.
func GenerateRecurringDebts(f *gofakeit.Faker, userID string, n int) []models.RecurringDebt {
	names := append([]string(nil), debtNames...)
	f.ShuffleStrings(names)
	if n > len(names) {
		n = len(names)
	}

	debts := make([]models.RecurringDebt, 0, n)
	for _, name := range names[:n] {
		category := f.RandomString(mei.RecurringCategories)
		debts = append(debts, models.RecurringDebt{
			UserID:   userID,
			Name:     name,
			Amount:   price(f, 30, 1500),
			DueDay:   f.Number(1, 28),
			Category: &category,
			IsActive: f.Number(0, 4) != 0,
		})
	}
	return debts
}

// GenerateDasHistory builds one command per past month: paid for the older
// months, and for the month before anchor paid or pending at random.
func GenerateDasHistory(f *gofakeit.Faker, policy mei.PaymentPolicy, userID string, anchor time.Time, months int) []mei.PaymentCommand {
	cmds := make([]mei.PaymentCommand, 0, months)
	current := mei.ReferenceMonth(anchor)
	for i := months; i >= 1; i-- {
		ref := current.AddDate(0, -i, 0)
		if i == 1 && f.Bool() {
			cmd, _ := policy.CreatePending(nil, userID, ref, nil)
			cmds = append(cmds, cmd)
			continue
		}
		cmds = append(cmds, policy.MarkPaid(nil, userID, ref, nil))
	}
	return cmds
}
