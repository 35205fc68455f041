package handlers_test

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valeriaulyamaeva/controle-mei/internal/mei"
	"github.com/valeriaulyamaeva/controle-mei/models"
)

type debtList struct {
	Debts []struct {
		models.RecurringDebt
		Status mei.DebtStatus `json:"status"`
	} `json:"debts"`
	ActiveCount int             `json:"active_count"`
	ActiveTotal decimal.Decimal `json:"active_total"`
}

func TestRecurringDebtLifecycle(t *testing.T) {
	e := newEnv(t)

	rec := e.do(http.MethodPost, "/recurring-debts", map[string]any{"name": "Aluguel", "amount": "1200", "due_day": 5})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rent := decode[models.RecurringDebt](t, rec)
	assert.True(t, rent.IsActive)
	assert.Nil(t, rent.Category)

	rec = e.do(http.MethodPost, "/recurring-debts", map[string]any{
		"name": "Contador", "amount": 150, "due_day": 25, "category": "Contador", "is_active": false,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	accountant := decode[models.RecurringDebt](t, rec)
	assert.False(t, accountant.IsActive)

	list := decode[debtList](t, e.do(http.MethodGet, "/recurring-debts", nil))
	require.Len(t, list.Debts, 2)
	assert.Equal(t, mei.DebtOverdue, list.Debts[0].Status)
	assert.Equal(t, mei.DebtUpcoming, list.Debts[1].Status)
	assert.Equal(t, 1, list.ActiveCount)
	assert.True(t, list.ActiveTotal.Equal(dec("1200")))

	rec = e.do(http.MethodPatch, "/recurring-debts/"+accountant.ID+"/toggle", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[models.RecurringDebt](t, rec).IsActive)

	active := decode[debtList](t, e.do(http.MethodGet, "/recurring-debts?active=true", nil))
	assert.Len(t, active.Debts, 2)
	assert.True(t, active.ActiveTotal.Equal(dec("1350")))

	rec = e.do(http.MethodPut, "/recurring-debts/"+rent.ID, map[string]any{"name": "Aluguel sala", "amount": "1300", "due_day": 18})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[models.RecurringDebt](t, rec)
	assert.Equal(t, "Aluguel sala", updated.Name)
	assert.True(t, updated.IsActive)

	list = decode[debtList](t, e.do(http.MethodGet, "/recurring-debts", nil))
	assert.Equal(t, mei.DebtDueToday, list.Debts[0].Status)

	assert.Equal(t, http.StatusOK, e.do(http.MethodDelete, "/recurring-debts/"+rent.ID, nil).Code)
	assert.Equal(t, http.StatusNotFound, e.do(http.MethodDelete, "/recurring-debts/"+rent.ID, nil).Code)
	assert.Equal(t, http.StatusNotFound, e.do(http.MethodPatch, "/recurring-debts/"+rent.ID+"/toggle", nil).Code)
}

func TestRecurringDebtValidation(t *testing.T) {
	e := newEnv(t)

	for name, body := range map[string]map[string]any{
		"due day too big": {"name": "Luz", "amount": 100, "due_day": 32},
		"due day zero":    {"name": "Luz", "amount": 100, "due_day": 0},
		"no name":         {"name": "  ", "amount": 100, "due_day": 10},
		"no amount":       {"name": "Luz", "due_day": 10},
		"negative":        {"name": "Luz", "amount": -1, "due_day": 10},
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, e.do(http.MethodPost, "/recurring-debts", body).Code)
		})
	}
	assert.Empty(t, e.debts.rows)
}
