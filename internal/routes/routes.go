package routes

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/valeriaulyamaeva/controle-mei/internal/handlers"
	"github.com/valeriaulyamaeva/controle-mei/internal/metrics"
)

type Options struct {
	CORSOrigins []string
	Metrics     *metrics.Metrics
	// Health is checked by /healthz when set, usually the pool ping.
	Health func(ctx context.Context) error
}

func SetupRouter(h *handlers.Handler, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(), CORSMiddleware(opts.CORSOrigins))
	if opts.Metrics != nil {
		r.Use(Instrument(opts.Metrics))
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	r.GET("/healthz", func(c *gin.Context) {
		if opts.Health != nil {
			if err := opts.Health(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/links", h.Links)
	r.GET("/categories", h.Categories)

	auth := r.Group("/auth")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)
	auth.POST("/logout", h.Logout)

	api := r.Group("/", h.RequireAuth())
	api.GET("/profile", h.GetProfile)

	api.GET("/transactions", h.ListTransactions)
	api.POST("/transactions", h.CreateTransaction)
	api.GET("/transactions/export", h.ExportTransactions)
	api.DELETE("/transactions/:id", h.DeleteTransaction)

	api.GET("/recurring-debts", h.ListRecurringDebts)
	api.POST("/recurring-debts", h.CreateRecurringDebt)
	api.PUT("/recurring-debts/:id", h.UpdateRecurringDebt)
	api.PATCH("/recurring-debts/:id/toggle", h.ToggleRecurringDebt)
	api.DELETE("/recurring-debts/:id", h.DeleteRecurringDebt)

	api.GET("/das", h.GetDas)
	api.POST("/das/pay", h.PayDas)
	api.POST("/das/pending", h.CreatePendingDas)

	api.GET("/dashboard/summary", h.DashboardSummary)

	api.GET("/documents", h.ListDocuments)
	api.GET("/documents/:id", h.OpenDocument)

	return r
}
