package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valeriaulyamaeva/controle-mei/internal/database"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	users := database.NewUsers(pool)

	user := testUser(t, pool)
	assert.NotEqual(t, "segredo123", user.Password)

	got, err := users.Authenticate(ctx, user.Email, "segredo123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = users.Authenticate(ctx, user.Email, "errada")
	assert.ErrorIs(t, err, database.ErrInvalidCredentials)
	_, err = users.Authenticate(ctx, "ninguem@example.com.br", "segredo123")
	assert.ErrorIs(t, err, database.ErrInvalidCredentials)

	_, err = users.Register(ctx, user.Email, "outra", "")
	assert.ErrorIs(t, err, database.ErrDuplicate)

	profile, err := database.NewProfiles(pool).Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, profile.ID)
	assert.True(t, profile.MEIStatus)
	assert.NotNil(t, profile.FullName)
}

func TestSessions(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	user := testUser(t, pool)
	sessions := database.NewSessions(pool)

	s, err := sessions.Create(ctx, user.ID, time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, s.Token)

	owner, err := sessions.Resolve(ctx, s.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, owner)

	expired, err := sessions.Create(ctx, user.ID, -time.Minute)
	require.NoError(t, err)
	_, err = sessions.Resolve(ctx, expired.Token)
	assert.ErrorIs(t, err, database.ErrNotFound)

	require.NoError(t, sessions.Delete(ctx, s.Token))
	_, err = sessions.Resolve(ctx, s.Token)
	assert.ErrorIs(t, err, database.ErrNotFound)
}
