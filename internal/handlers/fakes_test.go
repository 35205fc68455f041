package handlers_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/valeriaulyamaeva/controle-mei/internal/database"
	"github.com/valeriaulyamaeva/controle-mei/internal/handlers"
	"github.com/valeriaulyamaeva/controle-mei/internal/mei"
	"github.com/valeriaulyamaeva/controle-mei/internal/metrics"
	"github.com/valeriaulyamaeva/controle-mei/internal/routes"
	"github.com/valeriaulyamaeva/controle-mei/internal/storage"
	"github.com/valeriaulyamaeva/controle-mei/models"
)

const (
	testUserID = "user-1"
	testToken  = "test-token"
)

var today = time.Date(2024, time.June, 18, 10, 0, 0, 0, time.UTC)

type fakeUsers struct {
	mu    sync.Mutex
	byKey map[string]models.User
}

func (f *fakeUsers) Register(_ context.Context, email, password, _ string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byKey[email]; ok {
		return models.User{}, database.ErrDuplicate
	}
	u := models.User{ID: fmt.Sprintf("user-%d", len(f.byKey)+2), Email: email, Password: password, CreatedAt: today}
	f.byKey[email] = u
	return u, nil
}

func (f *fakeUsers) Authenticate(_ context.Context, email, password string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byKey[email]
	if !ok || u.Password != password {
		return models.User{}, database.ErrInvalidCredentials
	}
	return u, nil
}

type fakeSessions struct {
	mu     sync.Mutex
	tokens map[string]models.Session
}

func (f *fakeSessions) Create(_ context.Context, userID string, ttl time.Duration) (models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := models.Session{Token: fmt.Sprintf("tok-%d", len(f.tokens)), UserID: userID, ExpiresAt: time.Now().Add(ttl)}
	f.tokens[s.Token] = s
	return s, nil
}

func (f *fakeSessions) Resolve(_ context.Context, token string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.tokens[token]
	if !ok || time.Now().After(s.ExpiresAt) {
		return "", database.ErrNotFound
	}
	return s.UserID, nil
}

func (f *fakeSessions) Delete(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, token)
	return nil
}

type fakeProfiles struct{}

func (fakeProfiles) Get(_ context.Context, userID string) (models.Profile, error) {
	if userID != testUserID {
		return models.Profile{}, database.ErrNotFound
	}
	name := "Maria Silva"
	return models.Profile{ID: userID, FullName: &name, MEIStatus: true, CreatedAt: today}, nil
}

type fakeTransactions struct {
	mu        sync.Mutex
	rows      []models.Transaction
	seq       int
	createErr error
}

func (f *fakeTransactions) ListByUser(_ context.Context, userID string) ([]models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Transaction, 0)
	for _, t := range f.rows {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (f *fakeTransactions) Get(_ context.Context, userID, id string) (models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.rows {
		if t.ID == id && t.UserID == userID {
			return t, nil
		}
	}
	return models.Transaction{}, database.ErrNotFound
}

func (f *fakeTransactions) Create(_ context.Context, t *models.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if t.ID == "" {
		f.seq++
		t.ID = fmt.Sprintf("tx-%d", f.seq)
	}
	t.CreatedAt = today
	f.rows = append(f.rows, *t)
	return nil
}

func (f *fakeTransactions) Delete(_ context.Context, userID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.rows {
		if t.ID == id && t.UserID == userID {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return database.ErrNotFound
}

type fakeDebts struct {
	mu   sync.Mutex
	rows []models.RecurringDebt
	seq  int
}

func (f *fakeDebts) find(userID, id string) int {
	for i, d := range f.rows {
		if d.ID == id && d.UserID == userID {
			return i
		}
	}
	return -1
}

func (f *fakeDebts) ListByUser(_ context.Context, userID string, activeOnly bool) ([]models.RecurringDebt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.RecurringDebt, 0)
	for _, d := range f.rows {
		if d.UserID == userID && (!activeOnly || d.IsActive) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDebts) Get(_ context.Context, userID, id string) (models.RecurringDebt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i := f.find(userID, id); i >= 0 {
		return f.rows[i], nil
	}
	return models.RecurringDebt{}, database.ErrNotFound
}

func (f *fakeDebts) Create(_ context.Context, d *models.RecurringDebt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	d.ID = fmt.Sprintf("debt-%d", f.seq)
	d.CreatedAt = today
	f.rows = append(f.rows, *d)
	return nil
}

func (f *fakeDebts) Update(_ context.Context, d *models.RecurringDebt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.find(d.UserID, d.ID)
	if i < 0 {
		return database.ErrNotFound
	}
	d.IsActive, d.CreatedAt = f.rows[i].IsActive, f.rows[i].CreatedAt
	f.rows[i] = *d
	return nil
}

func (f *fakeDebts) SetActive(_ context.Context, userID, id string, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.find(userID, id)
	if i < 0 {
		return database.ErrNotFound
	}
	f.rows[i].IsActive = active
	return nil
}

func (f *fakeDebts) Delete(_ context.Context, userID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.find(userID, id)
	if i < 0 {
		return database.ErrNotFound
	}
	f.rows = append(f.rows[:i], f.rows[i+1:]...)
	return nil
}

type fakeDas struct {
	mu   sync.Mutex
	rows []models.DasPayment
}

func (f *fakeDas) ListRecent(_ context.Context, userID string, limit int) ([]models.DasPayment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.DasPayment, 0)
	for _, p := range f.rows {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ReferenceMonth.After(out[j].ReferenceMonth) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeDas) Apply(_ context.Context, cmd mei.PaymentCommand) (models.DasPayment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := cmd.Payment
	switch cmd.Kind {
	case mei.CommandInsert:
		for _, row := range f.rows {
			if row.UserID == p.UserID && row.ReferenceMonth.Equal(p.ReferenceMonth) {
				return models.DasPayment{}, database.ErrDuplicate
			}
		}
		p.ID = fmt.Sprintf("das-%d", len(f.rows)+1)
		p.CreatedAt = today
		f.rows = append(f.rows, p)
		return p, nil
	default:
		for i, row := range f.rows {
			if row.ID == p.ID && row.UserID == p.UserID {
				f.rows[i] = p
				return p, nil
			}
		}
		return models.DasPayment{}, database.ErrNotFound
	}
}

// signingStore is a document store that hands out fake signed URLs.
type signingStore struct {
	storage.Store
}

func (signingStore) PresignGet(_ context.Context, objectPath string, ttl time.Duration) (string, error) {
	return fmt.Sprintf("https://files.example.com/%s?expires=%d", objectPath, int(ttl.Seconds())), nil
}

type env struct {
	t       *testing.T
	router  *gin.Engine
	txs     *fakeTransactions
	debts   *fakeDebts
	das     *fakeDas
	docs    storage.Store
	metrics *metrics.Metrics
}

func newEnv(t *testing.T, configure ...func(*handlers.Deps)) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	docs, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)

	e := &env{
		t:       t,
		txs:     &fakeTransactions{},
		debts:   &fakeDebts{},
		das:     &fakeDas{},
		docs:    docs,
		metrics: metrics.New(),
	}
	clock := func() time.Time { return today }
	deps := handlers.Deps{
		Users: &fakeUsers{byKey: map[string]models.User{}},
		Sessions: &fakeSessions{tokens: map[string]models.Session{
			testToken: {Token: testToken, UserID: testUserID, ExpiresAt: time.Now().Add(time.Hour)},
		}},
		Profiles:     fakeProfiles{},
		Transactions: e.txs,
		Debts:        e.debts,
		Das:          e.das,
		Documents:    docs,
		Metrics:      e.metrics,
		Policy:       mei.PaymentPolicy{DefaultAmount: decimal.RequireFromString("66.00"), Now: clock},
		Now:          clock,
	}
	for _, fn := range configure {
		fn(&deps)
	}
	e.router = routes.SetupRouter(handlers.New(deps), routes.Options{Metrics: e.metrics})
	return e
}

func (e *env) request(method, path string, body io.Reader, contentType, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// do sends an authenticated request with v encoded as JSON, or no body when v is nil.
func (e *env) do(method, path string, v any) *httptest.ResponseRecorder {
	if v == nil {
		return e.request(method, path, nil, "", testToken)
	}
	return e.request(method, path, jsonBody(e.t, v), "application/json", testToken)
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	body, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(body)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func strp(s string) *string { return &s }

func date(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func (e *env) seedTx(typ models.TransactionType, amount string, when time.Time, category, description, file string) models.Transaction {
	tx := models.Transaction{UserID: testUserID, Type: typ, Amount: dec(amount), Date: when}
	if category != "" {
		tx.Category = &category
	}
	if description != "" {
		tx.Description = &description
	}
	if file != "" {
		tx.FileURL = &file
	}
	require.NoError(e.t, e.txs.Create(context.Background(), &tx))
	return tx
}
