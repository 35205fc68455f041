package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/controle-mei/models"
	"golang.org/x/crypto/bcrypt"
)

type Users struct{ pool *pgxpool.Pool }

func NewUsers(p *pgxpool.Pool) *Users { return &Users{pool: p} }

// Register stores the user with a bcrypt hash and creates the matching
// profile in the same transaction.
func (r *Users) Register(ctx context.Context, email, password, fullName string) (models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:       uuid.NewString(),
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: string(hashed),
	}
	var name *string
	if fullName != "" {
		name = &fullName
	}

	err = pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO users (id, email, password)
			VALUES ($1, $2, $3)
			RETURNING created_at`,
			user.ID, user.Email, user.Password).Scan(&user.CreatedAt)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `INSERT INTO profiles (id, full_name) VALUES ($1, $2)`, user.ID, name)
		return err
	})
	if isUniqueViolation(err) {
		return models.User{}, ErrDuplicate
	}
	if err != nil {
		return models.User{}, fmt.Errorf("register user: %w", err)
	}
	return user, nil
}

// Authenticate returns ErrInvalidCredentials for an unknown email as well as
// for a wrong password.
func (r *Users) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	var user models.User
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, password, created_at
		FROM users
		WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email))).Scan(&user.ID, &user.Email, &user.Password, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, fmt.Errorf("authenticate: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// FindByEmail is used by the seeder to reuse its demo account.
func (r *Users) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.pool.QueryRow(ctx, `SELECT id, email, password, created_at FROM users WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email))).Scan(&user.ID, &user.Email, &user.Password, &user.CreatedAt)
	if err != nil {
		return models.User{}, notFound("find user", err)
	}
	return user, nil
}
