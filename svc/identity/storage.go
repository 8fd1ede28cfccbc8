package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Account is a stored identity.
type Account struct {
	ID            uuid.UUID
	Email         string
	DisplayName   string
	PhotoURL      string
	PasswordHash  []byte
	EmailVerified bool
	Disabled      bool
	SignedOutAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasPassword reports whether the account can sign in with a password.
func (a *Account) HasPassword() bool {
	return len(a.PasswordHash) > 0
}

// AccountStorage persists accounts and their federated links.
// Lookups return ErrAccountNotFound; CreateAccount returns ErrEmailTaken on
// a duplicate email.
type AccountStorage interface {
	CreateAccount(ctx context.Context, acc *Account) error
	CreateFederatedAccount(ctx context.Context, acc *Account, provider, providerUserID string) error
	GetAccountByID(ctx context.Context, id uuid.UUID) (*Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*Account, error)
	GetAccountByProvider(ctx context.Context, provider, providerUserID string) (*Account, error)
	UpdateDisplayName(ctx context.Context, id uuid.UUID, name string) error
	SetEmailVerified(ctx context.Context, id uuid.UUID) error
	SetPasswordHash(ctx context.Context, id uuid.UUID, hash []byte) error
	MarkSignedOut(ctx context.Context, id uuid.UUID, at time.Time) error
}

// StateStore keeps one-time OAuth state values.
type StateStore interface {
	Save(ctx context.Context, state, providerID string, ttl time.Duration) error
	// Consume returns the provider the state was issued for and deletes it.
	// Returns ErrStateNotFound when missing, expired or already used.
	Consume(ctx context.Context, state string) (string, error)
}
