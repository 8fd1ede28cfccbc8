package auth_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/finauth/svc/auth"
	"github.com/dmitrymomot/finauth/svc/profile"
)

type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) CreateAccount(ctx context.Context, email, password string) (*auth.ProviderUser, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.ProviderUser), args.Error(1)
}

func (m *MockIdentityProvider) SignIn(ctx context.Context, email, password string) (*auth.ProviderUser, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.ProviderUser), args.Error(1)
}

func (m *MockIdentityProvider) UpdateProfile(ctx context.Context, uid, displayName string) error {
	return m.Called(ctx, uid, displayName).Error(0)
}

func (m *MockIdentityProvider) SendEmailVerification(ctx context.Context, uid string) error {
	return m.Called(ctx, uid).Error(0)
}

func (m *MockIdentityProvider) SendPasswordReset(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockIdentityProvider) SignOut(ctx context.Context, uid string) error {
	return m.Called(ctx, uid).Error(0)
}

func (m *MockIdentityProvider) FederatedAuthURL(ctx context.Context, providerID string) (string, error) {
	args := m.Called(ctx, providerID)
	return args.String(0), args.Error(1)
}

func (m *MockIdentityProvider) SignInWithPopup(ctx context.Context, req auth.FederatedRequest) (*auth.ProviderUser, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.ProviderUser), args.Error(1)
}

func (m *MockIdentityProvider) ApplyEmailVerification(ctx context.Context, code string) (*auth.ProviderUser, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.ProviderUser), args.Error(1)
}

func (m *MockIdentityProvider) ConfirmPasswordReset(ctx context.Context, code, newPassword string) error {
	return m.Called(ctx, code, newPassword).Error(0)
}

type MockProfileStore struct {
	mock.Mock
}

func (m *MockProfileStore) Upsert(ctx context.Context, userID string, fields profile.Fields) error {
	return m.Called(ctx, userID, fields).Error(0)
}

var (
	_ auth.IdentityProvider = (*MockIdentityProvider)(nil)
	_ auth.ProfileStore     = (*MockProfileStore)(nil)
	_ auth.ProfileStore     = (*profile.Store)(nil)
)
