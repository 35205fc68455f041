package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/controle-mei/models"
)

type Transactions struct{ pool *pgxpool.Pool }

func NewTransactions(p *pgxpool.Pool) *Transactions { return &Transactions{pool: p} }

const transactionColumns = `id, user_id, type, amount, transaction_date, category, description, file_url, created_at`

func scanTransaction(row pgx.Row, t *models.Transaction) error {
	return row.Scan(&t.ID, &t.UserID, &t.Type, &t.Amount, &t.Date, &t.Category, &t.Description, &t.FileURL, &t.CreatedAt)
}

// ListByUser returns the whole ledger of a user, newest transaction date first.
func (r *Transactions) ListByUser(ctx context.Context, userID string) ([]models.Transaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE user_id = $1
		ORDER BY transaction_date DESC, created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	txs := make([]models.Transaction, 0)
	for rows.Next() {
		var t models.Transaction
		if err := scanTransaction(rows, &t); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

func (r *Transactions) Get(ctx context.Context, userID, id string) (models.Transaction, error) {
	var t models.Transaction
	err := scanTransaction(r.pool.QueryRow(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE id = $1 AND user_id = $2`, id, userID), &t)
	if err != nil {
		return models.Transaction{}, notFound("get transaction", err)
	}
	return t, nil
}

// Create assigns the id and created_at of t.
func (r *Transactions) Create(ctx context.Context, t *models.Transaction) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO transactions (id, user_id, type, amount, transaction_date, category, description, file_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`,
		t.ID, t.UserID, t.Type, t.Amount, t.Date, t.Category, t.Description, t.FileURL).Scan(&t.CreatedAt)
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

func (r *Transactions) Delete(ctx context.Context, userID, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return notFound("delete transaction", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
