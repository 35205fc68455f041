package mei

import (
	"strings"

	"github.com/valeriaulyamaeva/controle-mei/models"
)

var csvHeader = []string{"Data", "Tipo", "Valor", "Categoria", "Descrição"}

func typeLabel(t models.TransactionType) string {
	if t == models.TransactionIncome {
		return "Entrada"
	}
	return "Saída"
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ExportCSV joins the transactions into a human-readable comma separated
// text. Values are formatted for pt-BR and fields are not quoted, so the
// output is meant for reading, not for importing back.
func ExportCSV(txs []models.Transaction) string {
	lines := make([]string, 0, len(txs)+1)
	lines = append(lines, strings.Join(csvHeader, ","))
	for _, t := range txs {
		lines = append(lines, strings.Join([]string{
			FormatDate(t.Date),
			typeLabel(t.Type),
			FormatCurrency(t.Amount),
			deref(t.Category),
			deref(t.Description),
		}, ","))
	}
	return strings.Join(lines, "\n")
}
