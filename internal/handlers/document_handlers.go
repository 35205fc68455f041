package handlers

import (
	"fmt"
	"mime"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
	"github.com/valeriaulyamaeva/controle-mei/internal/database"
	"github.com/valeriaulyamaeva/controle-mei/internal/mei"
	"github.com/valeriaulyamaeva/controle-mei/internal/storage"
)

// ListDocuments is the "notas fiscais" screen: transactions with an attached
// document, filtered by search and month, plus the months that have any.
func (h *Handler) ListDocuments(c *gin.Context) {
	filter, err := parseFilter(c, "all", h.now())
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	txs, err := h.transactions.ListByUser(c.Request.Context(), UserID(c))
	if err != nil {
		h.fail(c, err, "Erro ao carregar notas fiscais")
		return
	}
	docs := mei.FilterTransactions(mei.WithDocuments(txs), filter)
	c.JSON(http.StatusOK, gin.H{
		"documents": docs,
		"months":    mei.DocumentMonths(txs),
		"count":     len(docs),
	})
}

// OpenDocument redirects to a temporary URL when the store can sign one and
// streams the object otherwise.
func (h *Handler) OpenDocument(c *gin.Context) {
	ctx, userID := c.Request.Context(), UserID(c)
	tx, err := h.transactions.Get(ctx, userID, c.Param("id"))
	if err != nil {
		h.fail(c, err, "Erro ao abrir nota fiscal")
		return
	}
	if !tx.HasDocument() || !storage.OwnedBy(*tx.FileURL, userID) {
		h.fail(c, database.ErrNotFound, "Nota fiscal não encontrada")
		return
	}
	objectPath := *tx.FileURL

	if signer, ok := h.documents.(storage.Presigner); ok {
		url, err := signer.PresignGet(ctx, objectPath, h.opts.SignedURLTTL)
		if err != nil {
			h.fail(c, err, "Erro ao gerar link da nota fiscal")
			return
		}
		c.Redirect(http.StatusFound, url)
		return
	}

	rc, err := h.documents.Open(ctx, objectPath)
	if err != nil {
		h.fail(c, err, "Erro ao abrir nota fiscal")
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(path.Ext(objectPath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, -1, contentType, rc, map[string]string{
		"Content-Disposition": fmt.Sprintf(`inline; filename="%s"`, path.Base(objectPath)),
	})
}
