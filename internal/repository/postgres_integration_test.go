package repository_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sigma-platform/authentication/internal/domain"
	"github.com/sigma-platform/authentication/internal/persistence"
	"github.com/sigma-platform/authentication/internal/repository"
)

// openTestPool connects to AUTH_TEST_POSTGRES_DSN and applies migrations.
func openTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("AUTH_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("AUTH_TEST_POSTGRES_DSN not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, persistence.RunMigrations(ctx, pool, zap.NewNop()))
	return pool
}

func TestPostgresAdminRepository(t *testing.T) {
	pool := openTestPool(t)
	ctx := context.Background()
	repo := repository.NewAdminRepository(pool, prefixHasher{})
	email := uuid.NewString() + "@example.com"
	t.Cleanup(func() { _ = repo.Delete(context.Background(), email) })

	created, err := repo.Create(ctx, email, "asdf", "pw")
	require.NoError(t, err)
	assert.Equal(t, "hashed:pw", created.PasswordHash)

	_, err = repo.Create(ctx, email, "again", "pw")
	assert.ErrorIs(t, err, domain.ErrAdminExists)

	renamed, err := repo.Rename(ctx, email, "renamed")
	require.NoError(t, err)
	assert.Equal(t, "renamed", renamed.Name)

	missing, err := repo.Rename(ctx, "missing-"+email, "x")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, repo.Delete(ctx, email))
	require.NoError(t, repo.Delete(ctx, email))
	found, err := repo.FindByEmail(ctx, email)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestPostgresTableSessionRepository(t *testing.T) {
	pool := openTestPool(t)
	ctx := context.Background()
	repo := repository.NewTableSessionRepository(pool)
	tableID, orderID := uuid.New(), uuid.New()

	session, err := repo.Create(ctx, tableID, orderID)
	require.NoError(t, err)
	assert.True(t, session.IsActive)
	assert.Nil(t, session.CheckoutID)
	assert.Equal(t, orderID, session.OrderID)

	active, err := repo.FindActiveByTable(ctx, tableID)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, session.ID, active.ID)

	checkout := uuid.New()
	updated, err := repo.SetCheckoutID(ctx, session.ID, &checkout)
	require.NoError(t, err)
	require.NotNil(t, updated.CheckoutID)
	assert.Equal(t, checkout, *updated.CheckoutID)

	cleared, err := repo.SetCheckoutID(ctx, session.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, cleared.CheckoutID)

	deactivated, err := repo.Deactivate(ctx, session.ID)
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive)

	active, err = repo.FindActiveByTable(ctx, tableID)
	require.NoError(t, err)
	assert.Nil(t, active)

	missing, err := repo.FindByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}
