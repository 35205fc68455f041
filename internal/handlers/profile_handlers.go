package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/valeriaulyamaeva/controle-mei/internal/mei"
	"github.com/valeriaulyamaeva/controle-mei/models"
)

func (h *Handler) GetProfile(c *gin.Context) {
	profile, err := h.profiles.Get(c.Request.Context(), UserID(c))
	if err != nil {
		h.fail(c, err, "Erro ao carregar perfil")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Categories lists the suggested categories for the forms. With ?type= it
// returns only the list for that transaction type.
func (h *Handler) Categories(c *gin.Context) {
	if t := c.Query("type"); t != "" {
		typ := models.TransactionType(t)
		if !typ.Valid() {
			badRequest(c, "Tipo inválido")
			return
		}
		c.JSON(http.StatusOK, gin.H{"type": typ, "categories": mei.CategoriesFor(typ)})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"income":    mei.IncomeCategories,
		"expense":   mei.ExpenseCategories,
		"recurring": mei.RecurringCategories,
	})
}

func (h *Handler) Links(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"links": mei.UsefulLinks()})
}
