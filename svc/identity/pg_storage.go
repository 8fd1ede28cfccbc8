package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/finauth/pkg/pg"
)

// PGStorage is an AccountStorage over a pgx pool.
type PGStorage struct {
	pool *pgxpool.Pool
}

// NewPGStorage wraps pool. Apply migrations.FS first.
func NewPGStorage(pool *pgxpool.Pool) *PGStorage {
	return &PGStorage{pool: pool}
}

const accountColumns = `id, email, display_name, photo_url, password_hash, email_verified, disabled, signed_out_at, created_at, updated_at`

const insertAccount = `INSERT INTO accounts (id, email, display_name, photo_url, password_hash, email_verified, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`

func (s *PGStorage) CreateAccount(ctx context.Context, acc *Account) error {
	_, err := s.pool.Exec(ctx, insertAccount,
		acc.ID, acc.Email, acc.DisplayName, acc.PhotoURL, acc.PasswordHash, acc.EmailVerified, acc.CreatedAt)
	if pg.IsDuplicateKeyError(err) {
		return ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (s *PGStorage) CreateFederatedAccount(ctx context.Context, acc *Account, provider, providerUserID string) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, insertAccount,
			acc.ID, acc.Email, acc.DisplayName, acc.PhotoURL, acc.PasswordHash, acc.EmailVerified, acc.CreatedAt)
		if pg.IsDuplicateKeyError(err) {
			return ErrEmailTaken
		}
		if err != nil {
			return fmt.Errorf("insert account: %w", err)
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO account_providers (provider, provider_user_id, account_id) VALUES ($1, $2, $3)`,
			provider, providerUserID, acc.ID)
		if pg.IsDuplicateKeyError(err) {
			return ErrProviderLinked
		}
		if err != nil {
			return fmt.Errorf("insert provider link: %w", err)
		}
		return nil
	})
}

func (s *PGStorage) GetAccountByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	return s.getOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
}

func (s *PGStorage) GetAccountByEmail(ctx context.Context, email string) (*Account, error) {
	return s.getOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email)
}

func (s *PGStorage) GetAccountByProvider(ctx context.Context, provider, providerUserID string) (*Account, error) {
	return s.getOne(ctx, `SELECT a.id, a.email, a.display_name, a.photo_url, a.password_hash,
	a.email_verified, a.disabled, a.signed_out_at, a.created_at, a.updated_at
FROM accounts a JOIN account_providers p ON p.account_id = a.id
WHERE p.provider = $1 AND p.provider_user_id = $2`, provider, providerUserID)
}

func (s *PGStorage) UpdateDisplayName(ctx context.Context, id uuid.UUID, name string) error {
	return s.exec(ctx, `UPDATE accounts SET display_name = $2, updated_at = now() WHERE id = $1`, id, name)
}

func (s *PGStorage) SetEmailVerified(ctx context.Context, id uuid.UUID) error {
	return s.exec(ctx, `UPDATE accounts SET email_verified = TRUE, updated_at = now() WHERE id = $1`, id)
}

func (s *PGStorage) SetPasswordHash(ctx context.Context, id uuid.UUID, hash []byte) error {
	return s.exec(ctx, `UPDATE accounts SET password_hash = $2, updated_at = now() WHERE id = $1`, id, hash)
}

func (s *PGStorage) MarkSignedOut(ctx context.Context, id uuid.UUID, at time.Time) error {
	return s.exec(ctx, `UPDATE accounts SET signed_out_at = $2 WHERE id = $1`, id, at)
}

func (s *PGStorage) getOne(ctx context.Context, query string, args ...any) (*Account, error) {
	var a Account
	err := s.pool.QueryRow(ctx, query, args...).Scan(
		&a.ID, &a.Email, &a.DisplayName, &a.PhotoURL, &a.PasswordHash,
		&a.EmailVerified, &a.Disabled, &a.SignedOutAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if pg.IsNotFoundError(err) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select account: %w", err)
	}
	return &a, nil
}

func (s *PGStorage) exec(ctx context.Context, query string, args ...any) error {
	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}

var _ AccountStorage = (*PGStorage)(nil)
