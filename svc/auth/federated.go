package auth

import (
	"context"
	"slices"

	"github.com/dmitrymomot/finauth/pkg/validator"
	"github.com/dmitrymomot/finauth/svc/profile"
)

var federatedProviders = []string{profile.ProviderGoogle, profile.ProviderGitHub}

var providerNames = map[string]string{
	profile.ProviderGoogle: "Google",
	profile.ProviderGitHub: "GitHub",
}

func providerRule(providerID string) validator.Rule {
	return validator.Rule{
		Check: func() bool { return slices.Contains(federatedProviders, providerID) },
		Error: validator.ValidationError{
			Field:          "provider",
			Message:        "unsupported sign-in provider",
			TranslationKey: "validation.provider",
		},
	}
}

// FederatedAuthURL returns the provider URL that starts federated sign-in,
// in Result.RedirectURL.
func (s *Service) FederatedAuthURL(ctx context.Context, providerID string) Result {
	if err := validator.Apply(providerRule(providerID)); err != nil {
		return s.invalid(ctx, OpFederatedURL, err)
	}

	var authURL string
	if err := s.call("federated_auth_url", func() (err error) {
		authURL, err = s.idp.FederatedAuthURL(ctx, providerID)
		return err
	}); err != nil {
		return s.fail(ctx, OpFederatedURL, err)
	}

	return s.succeed(ctx, OpFederatedURL, Result{RedirectURL: authURL},
		"auth.success.federated_redirect", "provider", providerNames[providerID])
}

// SignInWithProvider completes federated sign-in and merges the provider
// profile. A dismissed popup yields Cancelled with no error banner.
func (s *Service) SignInWithProvider(ctx context.Context, req FederatedRequest) Result {
	if err := validator.Apply(providerRule(req.ProviderID)); err != nil {
		return s.invalid(ctx, OpFederatedSignIn, err)
	}

	var user *ProviderUser
	if err := s.call("sign_in_with_popup", func() (err error) {
		user, err = s.idp.SignInWithPopup(ctx, req)
		return err
	}); err != nil {
		return s.fail(ctx, OpFederatedSignIn, err)
	}

	res := Result{User: summary(user, req.ProviderID)}
	res.User.Provider = req.ProviderID

	fields := profile.Fields{
		profile.FieldEmail:         user.Email,
		profile.FieldName:          user.DisplayName,
		profile.FieldEmailVerified: user.EmailVerified,
		profile.FieldProvider:      req.ProviderID,
		profile.FieldCreatedAt:     profile.ServerTimestamp,
		profile.FieldLastLogin:     profile.ServerTimestamp,
	}
	if user.PhotoURL != "" {
		fields[profile.FieldPhotoURL] = user.PhotoURL
	}
	s.upsertProfile(ctx, &res, OpFederatedSignIn, user.UID, fields)

	return s.succeed(ctx, OpFederatedSignIn, res, "auth.success.federated", "provider", providerNames[req.ProviderID])
}
