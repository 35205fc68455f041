package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/controle-mei/internal/logging"
	"github.com/valeriaulyamaeva/controle-mei/internal/mei"
	"github.com/valeriaulyamaeva/controle-mei/internal/storage"
	"github.com/valeriaulyamaeva/controle-mei/models"
)

type transactionRequest struct {
	Type        models.TransactionType `json:"type"`
	Amount      *decimal.Decimal       `json:"amount"`
	Date        string                 `json:"transaction_date"`
	Category    string                 `json:"category"`
	Description string                 `json:"description"`
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// toTransaction validates the request the way the entry form does: known
// type, parseable non-negative amount, ISO date.
func (r transactionRequest) toTransaction(userID string) (models.Transaction, error) {
	if !r.Type.Valid() {
		return models.Transaction{}, inputError("Tipo deve ser income ou expense")
	}
	if r.Amount == nil {
		return models.Transaction{}, inputError("Informe o valor")
	}
	if r.Amount.IsNegative() {
		return models.Transaction{}, inputError("O valor não pode ser negativo")
	}
	date, err := time.Parse(time.DateOnly, strings.TrimSpace(r.Date))
	if err != nil {
		return models.Transaction{}, inputError("Data inválida, use AAAA-MM-DD")
	}
	return models.Transaction{
		UserID:      userID,
		Type:        r.Type,
		Amount:      r.Amount.Round(2),
		Date:        date,
		Category:    optional(r.Category),
		Description: optional(r.Description),
	}, nil
}

func formRequest(c *gin.Context) (transactionRequest, error) {
	req := transactionRequest{
		Type:        models.TransactionType(c.PostForm("type")),
		Date:        c.PostForm("transaction_date"),
		Category:    c.PostForm("category"),
		Description: c.PostForm("description"),
	}
	if raw := strings.TrimSpace(c.PostForm("amount")); raw != "" {
		amount, err := decimal.NewFromString(strings.Replace(raw, ",", ".", 1))
		if err != nil {
			return req, inputError("Valor inválido")
		}
		req.Amount = &amount
	}
	return req, nil
}

// parseFilter reads search, type and month from the query string. month is
// "current", "all" or "YYYY-MM"; defaultMonth applies when it is absent.
func parseFilter(c *gin.Context, defaultMonth string, now time.Time) (mei.Filter, error) {
	f := mei.Filter{Search: strings.TrimSpace(c.Query("search"))}

	switch kind := c.DefaultQuery("type", "all"); kind {
	case "all", "":
	case string(models.TransactionIncome), string(models.TransactionExpense):
		f.Type = models.TransactionType(kind)
	default:
		return f, inputError("Filtro de tipo inválido: " + kind)
	}

	switch month := c.DefaultQuery("month", defaultMonth); month {
	case "all":
	case "current", "":
		ym := mei.YearMonthOf(now)
		f.Month = &ym
	default:
		ym, err := mei.ParseYearMonth(month)
		if err != nil {
			return f, inputError("Mês inválido: " + month)
		}
		f.Month = &ym
	}
	return f, nil
}

func (h *Handler) filteredTransactions(c *gin.Context) ([]models.Transaction, bool) {
	filter, err := parseFilter(c, "current", h.now())
	if err != nil {
		badRequest(c, err.Error())
		return nil, false
	}
	txs, err := h.transactions.ListByUser(c.Request.Context(), UserID(c))
	if err != nil {
		h.fail(c, err, "Erro ao carregar lançamentos")
		return nil, false
	}
	return mei.FilterTransactions(txs, filter), true
}

func (h *Handler) ListTransactions(c *gin.Context) {
	txs, ok := h.filteredTransactions(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txs, "count": len(txs)})
}

// ExportTransactions downloads the filtered view as CSV.
func (h *Handler) ExportTransactions(c *gin.Context) {
	txs, ok := h.filteredTransactions(c)
	if !ok {
		return
	}
	name := fmt.Sprintf("lancamentos_%s.csv", h.now().Format(time.DateOnly))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(mei.ExportCSV(txs)))
}

// CreateTransaction accepts JSON or a multipart form with an optional "file".
// The document is uploaded first and the row inserted afterwards; the two are
// not atomic, so a failed insert leaves the object behind and is reported.
func (h *Handler) CreateTransaction(c *gin.Context) {
	userID := UserID(c)

	var (
		req  transactionRequest
		file *multipart.FileHeader
	)
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.opts.MaxUploadBytes+1<<20)
		var err error
		if req, err = formRequest(c); err != nil {
			badRequest(c, err.Error())
			return
		}
		file, err = c.FormFile("file")
		if err != nil && !errors.Is(err, http.ErrMissingFile) {
			badRequest(c, "Arquivo inválido ou grande demais")
			return
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Dados do lançamento inválidos")
		return
	}

	tx, err := req.toTransaction(userID)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	if file != nil {
		if file.Size > h.opts.MaxUploadBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Arquivo grande demais"})
			return
		}
		objectPath, err := h.upload(c, userID, file)
		if err != nil {
			h.fail(c, err, "Erro ao enviar arquivo")
			return
		}
		tx.FileURL = &objectPath
	}

	if err := h.transactions.Create(c.Request.Context(), &tx); err != nil {
		if tx.FileURL != nil {
			h.metrics.OrphanedDocuments.Inc()
			h.log.Warn().Err(err).
				Str(logging.USER, userID).
				Str(logging.EVENT, "orphaned_document").
				Str("path", *tx.FileURL).
				Msg("document stored but transaction insert failed")
		}
		h.fail(c, err, "Erro ao adicionar lançamento")
		return
	}
	c.JSON(http.StatusCreated, tx)
}

func (h *Handler) upload(c *gin.Context, userID string, file *multipart.FileHeader) (string, error) {
	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	objectPath := storage.ObjectPath(userID, file.Filename, h.now())
	if err := h.documents.Upload(c.Request.Context(), objectPath, f, file.Size, file.Header.Get("Content-Type")); err != nil {
		return "", err
	}
	h.metrics.DocumentUploads.Inc()
	return objectPath, nil
}

func (h *Handler) DeleteTransaction(c *gin.Context) {
	if err := h.transactions.Delete(c.Request.Context(), UserID(c), c.Param("id")); err != nil {
		h.fail(c, err, "Erro ao excluir lançamento")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Lançamento excluído"})
}
