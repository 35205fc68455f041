package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/controle-mei/models"
)

type RecurringDebts struct{ pool *pgxpool.Pool }

func NewRecurringDebts(p *pgxpool.Pool) *RecurringDebts { return &RecurringDebts{pool: p} }

const debtColumns = `id, user_id, name, amount, due_day, category, is_active, created_at`

func scanDebt(row pgx.Row, d *models.RecurringDebt) error {
	return row.Scan(&d.ID, &d.UserID, &d.Name, &d.Amount, &d.DueDay, &d.Category, &d.IsActive, &d.CreatedAt)
}

// ListByUser orders by due day, the way the debts screen shows them.
func (r *RecurringDebts) ListByUser(ctx context.Context, userID string, activeOnly bool) ([]models.RecurringDebt, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+debtColumns+`
		FROM recurring_debts
		WHERE user_id = $1 AND (NOT $2 OR is_active)
		ORDER BY due_day, created_at`, userID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list recurring debts: %w", err)
	}
	defer rows.Close()

	debts := make([]models.RecurringDebt, 0)
	for rows.Next() {
		var d models.RecurringDebt
		if err := scanDebt(rows, &d); err != nil {
			return nil, fmt.Errorf("scan recurring debt: %w", err)
		}
		debts = append(debts, d)
	}
	return debts, rows.Err()
}

func (r *RecurringDebts) Get(ctx context.Context, userID, id string) (models.RecurringDebt, error) {
	var d models.RecurringDebt
	err := scanDebt(r.pool.QueryRow(ctx, `
		SELECT `+debtColumns+`
		FROM recurring_debts
		WHERE id = $1 AND user_id = $2`, id, userID), &d)
	if err != nil {
		return models.RecurringDebt{}, notFound("get recurring debt", err)
	}
	return d, nil
}

func (r *RecurringDebts) Create(ctx context.Context, d *models.RecurringDebt) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO recurring_debts (id, user_id, name, amount, due_day, category, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`,
		d.ID, d.UserID, d.Name, d.Amount, d.DueDay, d.Category, d.IsActive).Scan(&d.CreatedAt)
	if err != nil {
		return fmt.Errorf("create recurring debt: %w", err)
	}
	return nil
}

// Update rewrites the editable fields. is_active is left to SetActive.
func (r *RecurringDebts) Update(ctx context.Context, d *models.RecurringDebt) error {
	err := r.pool.QueryRow(ctx, `
		UPDATE recurring_debts
		SET name = $1, amount = $2, due_day = $3, category = $4
		WHERE id = $5 AND user_id = $6
		RETURNING is_active, created_at`,
		d.Name, d.Amount, d.DueDay, d.Category, d.ID, d.UserID).Scan(&d.IsActive, &d.CreatedAt)
	if err != nil {
		return notFound("update recurring debt", err)
	}
	return nil
}

func (r *RecurringDebts) SetActive(ctx context.Context, userID, id string, active bool) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE recurring_debts SET is_active = $1
		WHERE id = $2 AND user_id = $3`, active, id, userID)
	if err != nil {
		return notFound("set recurring debt active", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RecurringDebts) Delete(ctx context.Context, userID, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM recurring_debts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return notFound("delete recurring debt", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
