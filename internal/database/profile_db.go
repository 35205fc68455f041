package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/controle-mei/models"
)

type Profiles struct{ pool *pgxpool.Pool }

func NewProfiles(p *pgxpool.Pool) *Profiles { return &Profiles{pool: p} }

func (r *Profiles) Get(ctx context.Context, userID string) (models.Profile, error) {
	var p models.Profile
	err := r.pool.QueryRow(ctx, `
		SELECT id, full_name, cnpj, mei_status, created_at
		FROM profiles
		WHERE id = $1`, userID).Scan(&p.ID, &p.FullName, &p.CNPJ, &p.MEIStatus, &p.CreatedAt)
	if err != nil {
		return models.Profile{}, notFound("get profile", err)
	}
	return p, nil
}
