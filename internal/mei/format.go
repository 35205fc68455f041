package mei

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var ptBR = message.NewPrinter(language.BrazilianPortuguese)

var shortMonths = [...]string{"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"}

var longMonths = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

func ShortMonthName(m time.Month) string {
	return shortMonths[(int(m)-1+12)%12]
}

func MonthName(m time.Month) string {
	return longMonths[(int(m)-1+12)%12]
}

// MonthYearLabel renders a reference month as "junho de 2024".
func MonthYearLabel(t time.Time) string {
	return MonthName(t.Month()) + " de " + strconv.Itoa(t.Year())
}

// FormatCurrency renders v as Brazilian reais, e.g. "R$ 1.234,56".
func FormatCurrency(v decimal.Decimal) string {
	f, _ := v.Abs().Round(2).Float64()
	s := "R$ " + ptBR.Sprintf("%.2f", f)
	if v.Round(2).IsNegative() {
		return "-" + s
	}
	return s
}

// FormatDate renders t as dd/mm/aaaa.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}
