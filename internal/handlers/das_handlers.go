package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/controle-mei/internal/database"
	"github.com/valeriaulyamaeva/controle-mei/internal/logging"
	"github.com/valeriaulyamaeva/controle-mei/internal/mei"
	"github.com/valeriaulyamaeva/controle-mei/models"
)

type dasRequest struct {
	Amount *decimal.Decimal `json:"amount"`
}

type deadlineView struct {
	NextDueDate  string `json:"next_due_date"`
	DaysUntilDue int    `json:"days_until_due"`
	NearDeadline bool   `json:"near_deadline"`
}

func deadline(today time.Time) deadlineView {
	return deadlineView{
		NextDueDate:  mei.NextDueDate(today).Format(time.DateOnly),
		DaysUntilDue: mei.DaysUntilDue(today),
		NearDeadline: mei.IsNearDeadline(today),
	}
}

func (h *Handler) GetDas(c *gin.Context) {
	today := h.now()
	payments, err := h.das.ListRecent(c.Request.Context(), UserID(c), h.opts.DasHistoryLimit)
	if err != nil {
		h.fail(c, err, "Erro ao carregar DAS")
		return
	}
	ref := mei.ReferenceMonth(today)
	c.JSON(http.StatusOK, gin.H{
		"deadline":        deadline(today),
		"reference_month": mei.MonthKey(ref),
		"reference_label": mei.MonthYearLabel(ref),
		"current":         mei.FindCurrentPayment(payments, ref),
		"history":         payments,
		"pgmei_url":       mei.PGMEIURL,
	})
}

// bindDasAmount reads the optional amount; an empty body means the default.
func bindDasAmount(c *gin.Context) (*decimal.Decimal, bool) {
	var req dasRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, "Valor inválido")
		return nil, false
	}
	if req.Amount != nil && req.Amount.IsNegative() {
		badRequest(c, "O valor não pode ser negativo")
		return nil, false
	}
	return req.Amount, true
}

func (h *Handler) currentPayment(c *gin.Context) (*models.DasPayment, time.Time, bool) {
	ref := mei.ReferenceMonth(h.now())
	payments, err := h.das.ListRecent(c.Request.Context(), UserID(c), h.opts.DasHistoryLimit)
	if err != nil {
		h.fail(c, err, "Erro ao carregar DAS")
		return nil, ref, false
	}
	return mei.FindCurrentPayment(payments, ref), ref, true
}

func (h *Handler) applyDas(c *gin.Context, cmd mei.PaymentCommand, status int, msg string) {
	saved, err := h.das.Apply(c.Request.Context(), cmd)
	if errors.Is(err, database.ErrDuplicate) {
		msg = "O DAS deste mês já foi registrado"
	}
	if err != nil {
		h.fail(c, err, msg)
		return
	}
	h.metrics.DasPayments.WithLabelValues(string(saved.Status)).Inc()
	h.log.Info().
		Str(logging.USER, saved.UserID).
		Str(logging.EVENT, "das_"+string(cmd.Kind)).
		Str("reference_month", mei.MonthKey(saved.ReferenceMonth)).
		Str("status", string(saved.Status)).
		Msg("das payment written")
	c.JSON(status, saved)
}

// PayDas marks the current month as paid, updating its record when one exists.
func (h *Handler) PayDas(c *gin.Context) {
	amount, ok := bindDasAmount(c)
	if !ok {
		return
	}
	existing, ref, ok := h.currentPayment(c)
	if !ok {
		return
	}
	cmd := h.policy.MarkPaid(existing, UserID(c), ref, amount)
	h.applyDas(c, cmd, http.StatusOK, "Erro ao registrar pagamento do DAS")
}

// CreatePendingDas registers the current month as pending.
func (h *Handler) CreatePendingDas(c *gin.Context) {
	amount, ok := bindDasAmount(c)
	if !ok {
		return
	}
	existing, ref, ok := h.currentPayment(c)
	if !ok {
		return
	}
	cmd, err := h.policy.CreatePending(existing, UserID(c), ref, amount)
	if err != nil {
		h.fail(c, err, "O DAS deste mês já foi registrado")
		return
	}
	h.applyDas(c, cmd, http.StatusCreated, "Erro ao registrar DAS pendente")
}
