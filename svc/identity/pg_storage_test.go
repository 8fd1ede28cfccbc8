package identity_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/finauth/pkg/logger"
	"github.com/dmitrymomot/finauth/pkg/pg"
	"github.com/dmitrymomot/finauth/svc/identity"
	"github.com/dmitrymomot/finauth/svc/identity/migrations"
)

// setupPG connects to FINAUTH_TEST_PG_URL and applies the schema.
func setupPG(t *testing.T) *identity.PGStorage {
	t.Helper()
	connURL := os.Getenv("FINAUTH_TEST_PG_URL")
	if connURL == "" {
		t.Skip("FINAUTH_TEST_PG_URL not set")
	}

	ctx := context.Background()
	cfg := pg.Config{
		ConnectionString: connURL,
		MaxConns:         4,
		MinConns:         1,
		RetryAttempts:    1,
		RetryInterval:    time.Second,
		MigrationsTable:  "schema_migrations",
	}
	pool, err := pg.Connect(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, pg.Migrate(ctx, pool, migrations.FS, cfg, logger.Discard()))
	return identity.NewPGStorage(pool)
}

func TestPGStorage(t *testing.T) {
	s := setupPG(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	acc := &identity.Account{
		ID:           uuid.New(),
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: []byte("hash"),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, s.CreateAccount(ctx, acc))
	assert.ErrorIs(t, s.CreateAccount(ctx, &identity.Account{ID: uuid.New(), Email: acc.Email, CreatedAt: now}), identity.ErrEmailTaken)

	got, err := s.GetAccountByEmail(ctx, acc.Email)
	require.NoError(t, err)
	assert.Equal(t, acc.ID, got.ID)
	assert.False(t, got.EmailVerified)

	require.NoError(t, s.UpdateDisplayName(ctx, acc.ID, "Ana"))
	require.NoError(t, s.SetEmailVerified(ctx, acc.ID))
	require.NoError(t, s.SetPasswordHash(ctx, acc.ID, []byte("new-hash")))
	require.NoError(t, s.MarkSignedOut(ctx, acc.ID, now))

	got, err = s.GetAccountByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.DisplayName)
	assert.True(t, got.EmailVerified)
	assert.Equal(t, []byte("new-hash"), got.PasswordHash)
	require.NotNil(t, got.SignedOutAt)

	_, err = s.GetAccountByID(ctx, uuid.New())
	assert.ErrorIs(t, err, identity.ErrAccountNotFound)
	assert.ErrorIs(t, s.SetEmailVerified(ctx, uuid.New()), identity.ErrAccountNotFound)

	fed := &identity.Account{
		ID:            uuid.New(),
		Email:         uuid.NewString() + "@example.com",
		EmailVerified: true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	providerUserID := uuid.NewString()
	require.NoError(t, s.CreateFederatedAccount(ctx, fed, "google", providerUserID))

	linked, err := s.GetAccountByProvider(ctx, "google", providerUserID)
	require.NoError(t, err)
	assert.Equal(t, fed.ID, linked.ID)
	assert.False(t, linked.HasPassword())

	dup := &identity.Account{ID: uuid.New(), Email: uuid.NewString() + "@example.com", CreatedAt: now}
	assert.ErrorIs(t, s.CreateFederatedAccount(ctx, dup, "google", providerUserID), identity.ErrProviderLinked)
	_, err = s.GetAccountByID(ctx, dup.ID)
	assert.ErrorIs(t, err, identity.ErrAccountNotFound, "failed link must roll back the account")
}
