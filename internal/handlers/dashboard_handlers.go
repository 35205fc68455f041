package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/valeriaulyamaeva/controle-mei/internal/mei"
)

const recentTransactions = 5

// DashboardSummary is the overview screen: this month's totals, forecast
// after active recurring debts, the trend chart and the DAS countdown.
func (h *Handler) DashboardSummary(c *gin.Context) {
	ctx, userID := c.Request.Context(), UserID(c)
	today := h.now()

	txs, err := h.transactions.ListByUser(ctx, userID)
	if err != nil {
		h.fail(c, err, "Erro ao carregar lançamentos")
		return
	}
	debts, err := h.debts.ListByUser(ctx, userID, false)
	if err != nil {
		h.fail(c, err, "Erro ao carregar débitos recorrentes")
		return
	}

	totals := mei.MonthlyTotals(txs, today.Year(), today.Month())
	recurring := mei.RecurringTotal(debts)
	forecast := mei.Forecast(totals.Balance, debts)

	c.JSON(http.StatusOK, gin.H{
		"month":           mei.MonthYearLabel(today),
		"totals":          totals,
		"forecast":        forecast,
		"recurring_total": recurring,
		"active_debts":    mei.ActiveCount(debts),
		"formatted": gin.H{
			"income":          mei.FormatCurrency(totals.Income),
			"expense":         mei.FormatCurrency(totals.Expense),
			"balance":         mei.FormatCurrency(totals.Balance),
			"forecast":        mei.FormatCurrency(forecast),
			"recurring_total": mei.FormatCurrency(recurring),
		},
		"history": mei.TrailingMonths(txs, today, h.opts.HistoryMonths),
		"recent":  mei.Recent(txs, recentTransactions),
		"das":     deadline(today),
	})
}
