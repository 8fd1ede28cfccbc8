package auth

import (
	"context"
	"time"

	"github.com/dmitrymomot/finauth/svc/profile"
)

// Credentials are the email/password pair typed by the user. Never persisted.
type Credentials struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password,omitempty"`
}

// SignupProfile is the profile data collected on the signup form.
type SignupProfile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ProviderUser is what the identity provider knows about an account.
type ProviderUser struct {
	UID           string
	Email         string
	DisplayName   string
	PhotoURL      string
	EmailVerified bool
	ProviderID    string
}

// FederatedRequest carries the OAuth callback parameters for ProviderID.
// Error is the provider's error parameter, e.g. "access_denied".
type FederatedRequest struct {
	ProviderID string
	Code       string
	State      string
	Error      string
}

// IdentityProvider owns credentials and sessions. Domain failures must be
// returned as *ProviderError.
type IdentityProvider interface {
	CreateAccount(ctx context.Context, email, password string) (*ProviderUser, error)
	SignIn(ctx context.Context, email, password string) (*ProviderUser, error)
	UpdateProfile(ctx context.Context, uid, displayName string) error
	SendEmailVerification(ctx context.Context, uid string) error
	SendPasswordReset(ctx context.Context, email string) error
	SignOut(ctx context.Context, uid string) error
	FederatedAuthURL(ctx context.Context, providerID string) (string, error)
	SignInWithPopup(ctx context.Context, req FederatedRequest) (*ProviderUser, error)
	ApplyEmailVerification(ctx context.Context, code string) (*ProviderUser, error)
	ConfirmPasswordReset(ctx context.Context, code, newPassword string) error
}

// ProfileStore merges profile fields. Implemented by *profile.Store.
type ProfileStore interface {
	Upsert(ctx context.Context, userID string, fields profile.Fields) error
}

// Metrics receives operation outcomes. Implemented by *metrics.Collector.
type Metrics interface {
	RecordOutcome(operation, kind string)
	RecordWarning(step string)
	ObserveProviderCall(call string, d time.Duration)
}

type noopMetrics struct{}

func (noopMetrics) RecordOutcome(string, string) {}
func (noopMetrics) RecordWarning(string) {}
func (noopMetrics) ObserveProviderCall(string, time.Duration) {}
