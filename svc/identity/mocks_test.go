package identity_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/finauth/pkg/email"
	"github.com/dmitrymomot/finauth/svc/identity"
)

type MockAccountStorage struct {
	mock.Mock
}

func (m *MockAccountStorage) CreateAccount(ctx context.Context, acc *identity.Account) error {
	return m.Called(ctx, acc).Error(0)
}

func (m *MockAccountStorage) CreateFederatedAccount(ctx context.Context, acc *identity.Account, provider, providerUserID string) error {
	return m.Called(ctx, acc, provider, providerUserID).Error(0)
}

func (m *MockAccountStorage) GetAccountByID(ctx context.Context, id uuid.UUID) (*identity.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Account), args.Error(1)
}

func (m *MockAccountStorage) GetAccountByEmail(ctx context.Context, addr string) (*identity.Account, error) {
	args := m.Called(ctx, addr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Account), args.Error(1)
}

func (m *MockAccountStorage) GetAccountByProvider(ctx context.Context, provider, providerUserID string) (*identity.Account, error) {
	args := m.Called(ctx, provider, providerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Account), args.Error(1)
}

func (m *MockAccountStorage) UpdateDisplayName(ctx context.Context, id uuid.UUID, name string) error {
	return m.Called(ctx, id, name).Error(0)
}

func (m *MockAccountStorage) SetEmailVerified(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAccountStorage) SetPasswordHash(ctx context.Context, id uuid.UUID, hash []byte) error {
	return m.Called(ctx, id, hash).Error(0)
}

func (m *MockAccountStorage) MarkSignedOut(ctx context.Context, id uuid.UUID, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

type MockStateStore struct {
	mock.Mock
}

func (m *MockStateStore) Save(ctx context.Context, state, providerID string, ttl time.Duration) error {
	return m.Called(ctx, state, providerID, ttl).Error(0)
}

func (m *MockStateStore) Consume(ctx context.Context, state string) (string, error) {
	args := m.Called(ctx, state)
	return args.String(0), args.Error(1)
}

type MockOAuthAdapter struct {
	mock.Mock
	id string
}

func (m *MockOAuthAdapter) ProviderID() string { return m.id }

func (m *MockOAuthAdapter) AuthURL(state string) string {
	return "https://idp.example/authorize?state=" + state
}

func (m *MockOAuthAdapter) ResolveProfile(ctx context.Context, code string) (identity.OAuthProfile, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(identity.OAuthProfile), args.Error(1)
}

// recordingSender keeps sent messages in memory.
type recordingSender struct {
	mu   sync.Mutex
	sent []email.SendEmailParams
	err  error
}

func (s *recordingSender) SendEmail(_ context.Context, params email.SendEmailParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, params)
	return nil
}

func (s *recordingSender) last() email.SendEmailParams {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sent) == 0 {
		return email.SendEmailParams{}
	}
	return s.sent[len(s.sent)-1]
}

var (
	_ identity.AccountStorage = (*MockAccountStorage)(nil)
	_ identity.StateStore     = (*MockStateStore)(nil)
	_ identity.OAuthAdapter   = (*MockOAuthAdapter)(nil)
	_ email.EmailSender       = (*recordingSender)(nil)
)
