package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/controle-mei/internal/mei"
	"github.com/valeriaulyamaeva/controle-mei/models"
)

type debtRequest struct {
	Name     string           `json:"name" binding:"required"`
	Amount   *decimal.Decimal `json:"amount" binding:"required"`
	DueDay   int              `json:"due_day" binding:"required,min=1,max=31"`
	Category string           `json:"category"`
	IsActive *bool            `json:"is_active"`
}

// debtView adds the due badge of the current month to a debt.
type debtView struct {
	models.RecurringDebt
	Status mei.DebtStatus `json:"status"`
}

func (r debtRequest) validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return inputError("Informe o nome")
	}
	if r.Amount.IsNegative() {
		return inputError("O valor não pode ser negativo")
	}
	return nil
}

func bindDebt(c *gin.Context) (debtRequest, bool) {
	var req debtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Informe nome, valor e dia de vencimento entre 1 e 31")
		return req, false
	}
	if err := req.validate(); err != nil {
		badRequest(c, err.Error())
		return req, false
	}
	return req, true
}

func (h *Handler) ListRecurringDebts(c *gin.Context) {
	debts, err := h.debts.ListByUser(c.Request.Context(), UserID(c), c.Query("active") == "true")
	if err != nil {
		h.fail(c, err, "Erro ao carregar débitos recorrentes")
		return
	}

	today := h.now()
	views := make([]debtView, len(debts))
	for i, d := range debts {
		views[i] = debtView{RecurringDebt: d, Status: mei.DebtDueStatus(today, d.DueDay)}
	}
	c.JSON(http.StatusOK, gin.H{
		"debts":        views,
		"active_count": mei.ActiveCount(debts),
		"active_total": mei.RecurringTotal(debts),
	})
}

func (h *Handler) CreateRecurringDebt(c *gin.Context) {
	req, ok := bindDebt(c)
	if !ok {
		return
	}
	debt := models.RecurringDebt{
		UserID:   UserID(c),
		Name:     strings.TrimSpace(req.Name),
		Amount:   req.Amount.Round(2),
		DueDay:   req.DueDay,
		Category: optional(req.Category),
		IsActive: req.IsActive == nil || *req.IsActive,
	}
	if err := h.debts.Create(c.Request.Context(), &debt); err != nil {
		h.fail(c, err, "Erro ao adicionar débito recorrente")
		return
	}
	c.JSON(http.StatusCreated, debt)
}

func (h *Handler) UpdateRecurringDebt(c *gin.Context) {
	req, ok := bindDebt(c)
	if !ok {
		return
	}
	debt := models.RecurringDebt{
		ID:       c.Param("id"),
		UserID:   UserID(c),
		Name:     strings.TrimSpace(req.Name),
		Amount:   req.Amount.Round(2),
		DueDay:   req.DueDay,
		Category: optional(req.Category),
	}
	if err := h.debts.Update(c.Request.Context(), &debt); err != nil {
		h.fail(c, err, "Erro ao atualizar débito recorrente")
		return
	}
	c.JSON(http.StatusOK, debt)
}

// ToggleRecurringDebt flips is_active and returns the debt as it is now.
func (h *Handler) ToggleRecurringDebt(c *gin.Context) {
	ctx, userID := c.Request.Context(), UserID(c)
	debt, err := h.debts.Get(ctx, userID, c.Param("id"))
	if err != nil {
		h.fail(c, err, "Erro ao atualizar débito recorrente")
		return
	}
	debt.IsActive = !debt.IsActive
	if err := h.debts.SetActive(ctx, userID, debt.ID, debt.IsActive); err != nil {
		h.fail(c, err, "Erro ao atualizar débito recorrente")
		return
	}
	c.JSON(http.StatusOK, debt)
}

func (h *Handler) DeleteRecurringDebt(c *gin.Context) {
	if err := h.debts.Delete(c.Request.Context(), UserID(c), c.Param("id")); err != nil {
		h.fail(c, err, "Erro ao excluir débito recorrente")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Débito excluído"})
}
