package database_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valeriaulyamaeva/controle-mei/internal/database"
	"github.com/valeriaulyamaeva/controle-mei/migrations"
	"github.com/valeriaulyamaeva/controle-mei/models"
)

// testPool connects to DATABASE_URL (from the environment or the repo .env)
// and skips when no database is configured.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	_ = godotenv.Load("../../.env")
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := database.Connect(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, database.ApplyMigrations(ctx, pool, migrations.FS))
	return pool
}

func testUser(t *testing.T, pool *pgxpool.Pool) models.User {
	t.Helper()
	email := fmt.Sprintf("%d.%s", time.Now().UnixNano(), gofakeit.Email())
	user, err := database.NewUsers(pool).Register(context.Background(), email, "segredo123", gofakeit.Name())
	require.NoError(t, err)
	return user
}

func strp(s string) *string { return &s }

func TestTransactions(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	user := testUser(t, pool)
	repo := database.NewTransactions(pool)

	older := &models.Transaction{
		UserID: user.ID, Type: models.TransactionIncome, Amount: decimal.RequireFromString("1500.00"),
		Date: time.Date(2024, time.May, 3, 0, 0, 0, 0, time.UTC), Category: strp("Vendas"),
	}
	newer := &models.Transaction{
		UserID: user.ID, Type: models.TransactionExpense, Amount: decimal.RequireFromString("89.90"),
		Date: time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC), Description: strp("Internet"),
		FileURL: strp(user.ID + "/1718000000000.pdf"),
	}
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))
	assert.NotEmpty(t, older.ID)
	assert.False(t, older.CreatedAt.IsZero())

	list, err := repo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.True(t, list[0].Amount.Equal(decimal.RequireFromString("89.9")))
	assert.True(t, list[0].HasDocument())
	assert.Equal(t, time.June, list[0].Date.Month())

	got, err := repo.Get(ctx, user.ID, older.ID)
	require.NoError(t, err)
	assert.Equal(t, "Vendas", *got.Category)
	assert.Nil(t, got.Description)

	other := testUser(t, pool)
	assert.ErrorIs(t, repo.Delete(ctx, other.ID, older.ID), database.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, user.ID, older.ID))
	assert.ErrorIs(t, repo.Delete(ctx, user.ID, older.ID), database.ErrNotFound)
	_, err = repo.Get(ctx, user.ID, older.ID)
	assert.ErrorIs(t, err, database.ErrNotFound)

	_, err = repo.Get(ctx, user.ID, "abc")
	assert.ErrorIs(t, err, database.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, user.ID, "abc"), database.ErrNotFound)
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	pool := testPool(t)
	require.NoError(t, database.ApplyMigrations(context.Background(), pool, migrations.FS))
}
