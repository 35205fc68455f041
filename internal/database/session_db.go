package database

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/controle-mei/models"
)

type Sessions struct{ pool *pgxpool.Pool }

func NewSessions(p *pgxpool.Pool) *Sessions { return &Sessions{pool: p} }

func newToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func (r *Sessions) Create(ctx context.Context, userID string, ttl time.Duration) (models.Session, error) {
	token, err := newToken()
	if err != nil {
		return models.Session{}, fmt.Errorf("session token: %w", err)
	}
	s := models.Session{Token: token, UserID: userID, ExpiresAt: time.Now().Add(ttl).UTC()}
	err = r.pool.QueryRow(ctx, `
		INSERT INTO sessions (token, user_id, expires_at)
		VALUES ($1, $2, $3)
		RETURNING created_at`,
		token, userID, s.ExpiresAt).Scan(&s.CreatedAt)
	if err != nil {
		return models.Session{}, fmt.Errorf("create session: %w", err)
	}
	return s, nil
}

// Resolve returns the owner of a live token. Expired tokens are ErrNotFound.
func (r *Sessions) Resolve(ctx context.Context, token string) (string, error) {
	var userID string
	err := r.pool.QueryRow(ctx, `
		SELECT user_id
		FROM sessions
		WHERE token = $1 AND expires_at > now()`, token).Scan(&userID)
	if err != nil {
		return "", notFound("resolve session", err)
	}
	return userID, nil
}

func (r *Sessions) Delete(ctx context.Context, token string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
