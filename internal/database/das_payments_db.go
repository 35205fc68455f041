package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/controle-mei/internal/mei"
	"github.com/valeriaulyamaeva/controle-mei/models"
)

type DasPayments struct{ pool *pgxpool.Pool }

func NewDasPayments(p *pgxpool.Pool) *DasPayments { return &DasPayments{pool: p} }

// ListRecent returns up to limit records, newest reference month first.
func (r *DasPayments) ListRecent(ctx context.Context, userID string, limit int) ([]models.DasPayment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, reference_month, amount, status, paid_at, created_at
		FROM das_payments
		WHERE user_id = $1
		ORDER BY reference_month DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list das payments: %w", err)
	}
	defer rows.Close()

	payments := make([]models.DasPayment, 0)
	for rows.Next() {
		var p models.DasPayment
		if err := rows.Scan(&p.ID, &p.UserID, &p.ReferenceMonth, &p.Amount, &p.Status, &p.PaidAt, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan das payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// Apply executes a command built by mei.PaymentPolicy and returns the row as
// stored. A second insert for the same month fails with ErrDuplicate.
func (r *DasPayments) Apply(ctx context.Context, cmd mei.PaymentCommand) (models.DasPayment, error) {
	p := cmd.Payment
	switch cmd.Kind {
	case mei.CommandInsert:
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		err := r.pool.QueryRow(ctx, `
			INSERT INTO das_payments (id, user_id, reference_month, amount, status, paid_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING created_at`,
			p.ID, p.UserID, p.ReferenceMonth, p.Amount, p.Status, p.PaidAt).Scan(&p.CreatedAt)
		if isUniqueViolation(err) {
			return models.DasPayment{}, ErrDuplicate
		}
		if err != nil {
			return models.DasPayment{}, fmt.Errorf("insert das payment: %w", err)
		}
		return p, nil
	case mei.CommandUpdate:
		err := r.pool.QueryRow(ctx, `
			UPDATE das_payments
			SET status = $1, paid_at = $2, amount = $3
			WHERE id = $4 AND user_id = $5
			RETURNING reference_month, created_at`,
			p.Status, p.PaidAt, p.Amount, p.ID, p.UserID).Scan(&p.ReferenceMonth, &p.CreatedAt)
		if err != nil {
			return models.DasPayment{}, notFound("update das payment", err)
		}
		return p, nil
	default:
		return models.DasPayment{}, fmt.Errorf("unknown das command %q", cmd.Kind)
	}
}

// MarkOverdue flips pending records up to and including cutoff to overdue for
// every user and reports how many rows changed.
func (r *DasPayments) MarkOverdue(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.pool.Exec(ctx, `
		UPDATE das_payments
		SET status = 'overdue'
		WHERE status = 'pending' AND reference_month <= $1`, mei.ReferenceMonth(cutoff))
	if err != nil {
		return 0, fmt.Errorf("mark das overdue: %w", err)
	}
	return result.RowsAffected(), nil
}
