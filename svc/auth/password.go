package auth

import (
	"context"

	"github.com/dmitrymomot/finauth/pkg/sanitizer"
	"github.com/dmitrymomot/finauth/pkg/validator"
	"github.com/dmitrymomot/finauth/svc/profile"
)

// emailRules requires an email and, when present, checks its shape.
func emailRules(field, email string) validator.Rule {
	if email == "" {
		return validator.Required(field, email)
	}
	return validator.ValidEmail(field, email)
}

// newPasswordRules checks a password being set: presence, the length floor
// and the optional confirmation.
func newPasswordRules(password, confirm string) []validator.Rule {
	if password == "" {
		return []validator.Rule{validator.Required("password", password)}
	}
	return []validator.Rule{
		validator.PasswordFloor("password", password),
		validator.Equal("confirm_password", password, confirm),
	}
}

// Signup creates an email/password account, names it, sends the verification
// email and writes the initial profile. A provider failure on account
// creation stops the flow before any profile write.
func (s *Service) Signup(ctx context.Context, creds Credentials, p SignupProfile) Result {
	email := sanitizer.NormalizeEmail(creds.Email)
	name := sanitizer.DisplayName(p.Name)

	rules := append([]validator.Rule{emailRules("email", email)}, newPasswordRules(creds.Password, creds.ConfirmPassword)...)
	if err := validator.Apply(rules...); err != nil {
		return s.invalid(ctx, OpSignup, err)
	}

	var user *ProviderUser
	if err := s.call("create_account", func() (err error) {
		user, err = s.idp.CreateAccount(ctx, email, creds.Password)
		return err
	}); err != nil {
		return s.fail(ctx, OpSignup, err)
	}
	if user.Email == "" {
		user.Email = email
	}

	res := Result{User: summary(user, profile.ProviderEmail)}
	res.User.Name = name

	if name != "" {
		if err := s.call("update_profile", func() error {
			return s.idp.UpdateProfile(ctx, user.UID, name)
		}); err != nil {
			s.warn(ctx, &res, OpSignup, StepUpdateDisplayName, err)
		}
	}

	if err := s.call("send_email_verification", func() error {
		return s.idp.SendEmailVerification(ctx, user.UID)
	}); err != nil {
		s.warn(ctx, &res, OpSignup, StepSendVerification, err)
	}

	s.upsertProfile(ctx, &res, OpSignup, user.UID, profile.Fields{
		profile.FieldEmail:         user.Email,
		profile.FieldName:          name,
		profile.FieldEmailVerified: false,
		profile.FieldProvider:      profile.ProviderEmail,
		profile.FieldCreatedAt:     profile.ServerTimestamp,
		profile.FieldLastLogin:     profile.ServerTimestamp,
	})

	return s.succeed(ctx, OpSignup, res, "auth.success.signup")
}

// Login signs in with email and password and touches lastLogin. Only
// presence is checked locally; every credential failure reads the same.
func (s *Service) Login(ctx context.Context, creds Credentials) Result {
	email := sanitizer.NormalizeEmail(creds.Email)

	if err := validator.Apply(
		validator.Required("email", email),
		validator.Required("password", creds.Password),
	); err != nil {
		return s.invalid(ctx, OpLogin, err)
	}

	var user *ProviderUser
	if err := s.call("sign_in", func() (err error) {
		user, err = s.idp.SignIn(ctx, email, creds.Password)
		return err
	}); err != nil {
		return s.fail(ctx, OpLogin, err)
	}

	if !user.EmailVerified && s.requireVerified {
		return s.reject(ctx, OpLogin, UnverifiedEmail, user.UID)
	}

	res := Result{User: summary(user, profile.ProviderEmail)}
	if !user.EmailVerified {
		s.warn(ctx, &res, OpLogin, StepEmailUnverified, nil)
	}

	s.upsertProfile(ctx, &res, OpLogin, user.UID, profile.Fields{
		profile.FieldLastLogin: profile.ServerTimestamp,
	})

	return s.succeed(ctx, OpLogin, res, "auth.success.login")
}

// RequestPasswordReset mails a reset link. Malformed input never reaches the provider.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) Result {
	email = sanitizer.NormalizeEmail(email)
	if err := validator.Apply(emailRules("email", email)); err != nil {
		return s.invalid(ctx, OpPasswordReset, err)
	}

	if err := s.call("send_password_reset", func() error {
		return s.idp.SendPasswordReset(ctx, email)
	}); err != nil {
		return s.fail(ctx, OpPasswordReset, err)
	}

	return s.succeed(ctx, OpPasswordReset, Result{}, "auth.success.reset_sent")
}

// ConfirmPasswordReset sets a new password using the code from the reset email.
func (s *Service) ConfirmPasswordReset(ctx context.Context, code string, creds Credentials) Result {
	rules := append([]validator.Rule{validator.Required("code", code)}, newPasswordRules(creds.Password, creds.ConfirmPassword)...)
	if err := validator.Apply(rules...); err != nil {
		return s.invalid(ctx, OpConfirmPasswordReset, err)
	}

	if err := s.call("confirm_password_reset", func() error {
		return s.idp.ConfirmPasswordReset(ctx, code, creds.Password)
	}); err != nil {
		return s.fail(ctx, OpConfirmPasswordReset, err)
	}

	return s.succeed(ctx, OpConfirmPasswordReset, Result{}, "auth.success.password_changed")
}
