package account_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/finauth/modules/account"
	"github.com/dmitrymomot/finauth/svc/auth"
)

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Signup(ctx context.Context, creds auth.Credentials, p auth.SignupProfile) auth.Result {
	return m.Called(ctx, creds, p).Get(0).(auth.Result)
}

func (m *MockAuthenticator) Login(ctx context.Context, creds auth.Credentials) auth.Result {
	return m.Called(ctx, creds).Get(0).(auth.Result)
}

func (m *MockAuthenticator) RequestPasswordReset(ctx context.Context, email string) auth.Result {
	return m.Called(ctx, email).Get(0).(auth.Result)
}

func (m *MockAuthenticator) ConfirmPasswordReset(ctx context.Context, code string, creds auth.Credentials) auth.Result {
	return m.Called(ctx, code, creds).Get(0).(auth.Result)
}

func (m *MockAuthenticator) ConfirmEmailVerification(ctx context.Context, code string) auth.Result {
	return m.Called(ctx, code).Get(0).(auth.Result)
}

func (m *MockAuthenticator) SignOut(ctx context.Context, userID string) auth.Result {
	return m.Called(ctx, userID).Get(0).(auth.Result)
}

func (m *MockAuthenticator) FederatedAuthURL(ctx context.Context, providerID string) auth.Result {
	return m.Called(ctx, providerID).Get(0).(auth.Result)
}

func (m *MockAuthenticator) SignInWithProvider(ctx context.Context, req auth.FederatedRequest) auth.Result {
	return m.Called(ctx, req).Get(0).(auth.Result)
}

var _ account.Authenticator = (*MockAuthenticator)(nil)
