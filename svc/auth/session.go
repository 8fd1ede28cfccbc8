package auth

import (
	"context"
	"strings"

	"github.com/dmitrymomot/finauth/pkg/validator"
	"github.com/dmitrymomot/finauth/svc/profile"
)

// SignOut ends the provider session of userID. The profile is not touched.
func (s *Service) SignOut(ctx context.Context, userID string) Result {
	userID = strings.TrimSpace(userID)
	if err := validator.Apply(validator.Required("user_id", userID)); err != nil {
		return s.invalid(ctx, OpSignOut, err)
	}

	if err := s.call("sign_out", func() error {
		return s.idp.SignOut(ctx, userID)
	}); err != nil {
		return s.fail(ctx, OpSignOut, err)
	}

	return s.succeed(ctx, OpSignOut, Result{}, "auth.success.signout")
}

// ConfirmEmailVerification applies the code from the verification email and
// marks the profile verified.
func (s *Service) ConfirmEmailVerification(ctx context.Context, code string) Result {
	code = strings.TrimSpace(code)
	if err := validator.Apply(validator.Required("code", code)); err != nil {
		return s.invalid(ctx, OpVerifyEmail, err)
	}

	var user *ProviderUser
	if err := s.call("apply_email_verification", func() (err error) {
		user, err = s.idp.ApplyEmailVerification(ctx, code)
		return err
	}); err != nil {
		return s.fail(ctx, OpVerifyEmail, err)
	}
	user.EmailVerified = true

	res := Result{User: summary(user, profile.ProviderEmail)}
	s.upsertProfile(ctx, &res, OpVerifyEmail, user.UID, profile.Fields{
		profile.FieldEmailVerified: true,
	})

	return s.succeed(ctx, OpVerifyEmail, res, "auth.success.email_verified")
}
