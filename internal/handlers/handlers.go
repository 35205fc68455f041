package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/valeriaulyamaeva/controle-mei/internal/database"
	"github.com/valeriaulyamaeva/controle-mei/internal/logging"
	"github.com/valeriaulyamaeva/controle-mei/internal/mei"
	"github.com/valeriaulyamaeva/controle-mei/internal/metrics"
	"github.com/valeriaulyamaeva/controle-mei/internal/storage"
	"github.com/valeriaulyamaeva/controle-mei/models"
)

type UserStore interface {
	Register(ctx context.Context, email, password, fullName string) (models.User, error)
	Authenticate(ctx context.Context, email, password string) (models.User, error)
}

type SessionStore interface {
	Create(ctx context.Context, userID string, ttl time.Duration) (models.Session, error)
	Resolve(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
}

type ProfileStore interface {
	Get(ctx context.Context, userID string) (models.Profile, error)
}

type TransactionStore interface {
	ListByUser(ctx context.Context, userID string) ([]models.Transaction, error)
	Get(ctx context.Context, userID, id string) (models.Transaction, error)
	Create(ctx context.Context, t *models.Transaction) error
	Delete(ctx context.Context, userID, id string) error
}

type RecurringDebtStore interface {
	ListByUser(ctx context.Context, userID string, activeOnly bool) ([]models.RecurringDebt, error)
	Get(ctx context.Context, userID, id string) (models.RecurringDebt, error)
	Create(ctx context.Context, d *models.RecurringDebt) error
	Update(ctx context.Context, d *models.RecurringDebt) error
	SetActive(ctx context.Context, userID, id string, active bool) error
	Delete(ctx context.Context, userID, id string) error
}

type DasStore interface {
	ListRecent(ctx context.Context, userID string, limit int) ([]models.DasPayment, error)
	Apply(ctx context.Context, cmd mei.PaymentCommand) (models.DasPayment, error)
}

type Options struct {
	HistoryMonths   int
	DasHistoryLimit int
	SessionTTL      time.Duration
	SignedURLTTL    time.Duration
	MaxUploadBytes  int64
}

// Deps is everything the handlers talk to. Now defaults to time.Now.
type Deps struct {
	Users        UserStore
	Sessions     SessionStore
	Profiles     ProfileStore
	Transactions TransactionStore
	Debts        RecurringDebtStore
	Das          DasStore
	Documents    storage.Store
	Metrics      *metrics.Metrics
	Policy       mei.PaymentPolicy
	Now          func() time.Time
	Options      Options
}

type Handler struct {
	users        UserStore
	sessions     SessionStore
	profiles     ProfileStore
	transactions TransactionStore
	debts        RecurringDebtStore
	das          DasStore
	documents    storage.Store
	metrics      *metrics.Metrics
	policy       mei.PaymentPolicy
	now          func() time.Time
	opts         Options
	log          zerolog.Logger
}

func New(d Deps) *Handler {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	m := d.Metrics
	if m == nil {
		m = metrics.New()
	}
	opts := d.Options
	if opts.HistoryMonths <= 0 {
		opts.HistoryMonths = 6
	}
	if opts.DasHistoryLimit <= 0 {
		opts.DasHistoryLimit = 12
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 30 * 24 * time.Hour
	}
	if opts.SignedURLTTL <= 0 {
		opts.SignedURLTTL = time.Hour
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 10 << 20
	}
	return &Handler{
		users:        d.Users,
		sessions:     d.Sessions,
		profiles:     d.Profiles,
		transactions: d.Transactions,
		debts:        d.Debts,
		das:          d.Das,
		documents:    d.Documents,
		metrics:      m,
		policy:       d.Policy,
		now:          now,
		opts:         opts,
		log:          logging.For("handlers"),
	}
}

const userIDKey = "user_id"

// UserID is the authenticated user set by RequireAuth.
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// fail logs err and answers once with a Portuguese message. Not-found and
// conflict errors keep their own status; anything else is a 500 with msg.
func (h *Handler) fail(c *gin.Context, err error, msg string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, database.ErrNotFound), errors.Is(err, storage.ErrNotFound):
		status, msg = http.StatusNotFound, "Registro não encontrado"
	case errors.Is(err, database.ErrDuplicate), errors.Is(err, mei.ErrPaymentExists):
		status = http.StatusConflict
	case errors.Is(err, storage.ErrInvalidPath):
		status = http.StatusBadRequest
	}

	ev := h.log.Warn()
	if status >= http.StatusInternalServerError {
		ev = h.log.Error()
	}
	ev.Err(err).
		Str(logging.USER, UserID(c)).
		Str("route", c.FullPath()).
		Int("status", status).
		Msg(msg)
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// inputError carries a message meant for the user.
type inputError string

func (e inputError) Error() string { return string(e) }

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
}
