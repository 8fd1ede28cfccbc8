package identity

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/finauth/pkg/email"
	"github.com/dmitrymomot/finauth/pkg/i18n"
	"github.com/dmitrymomot/finauth/pkg/logger"
	"github.com/dmitrymomot/finauth/pkg/sanitizer"
	"github.com/dmitrymomot/finauth/pkg/token"
	"github.com/dmitrymomot/finauth/pkg/validator"
	"github.com/dmitrymomot/finauth/svc/auth"
	"github.com/dmitrymomot/finauth/svc/profile"
)

// Provider is the self-hosted auth.IdentityProvider.
type Provider struct {
	cfg      Config
	accounts AccountStorage
	states   StateStore
	mailer   email.EmailSender
	tr       auth.Translator
	adapters map[string]OAuthAdapter
	log      *slog.Logger
	now      func() time.Time

	// dummyHash is compared on sign-in misses so unknown emails cost as
	// much as a wrong password.
	dummyHash []byte
	compare   func(hash, password []byte) error
}

// Option configures a Provider.
type Option func(*Provider)

func WithLogger(l *slog.Logger) Option {
	return func(p *Provider) {
		if l != nil {
			p.log = l
		}
	}
}

// WithOAuthAdapter enables federated sign-in through a.
func WithOAuthAdapter(a OAuthAdapter) Option {
	return func(p *Provider) {
		if a != nil {
			p.adapters[a.ProviderID()] = a
		}
	}
}

// WithTranslator sets the catalog used for email texts.
func WithTranslator(tr auth.Translator) Option {
	return func(p *Provider) {
		if tr != nil {
			p.tr = tr
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(p *Provider) {
		if now != nil {
			p.now = now
		}
	}
}

// NewProvider creates a Provider.
func NewProvider(cfg Config, accounts AccountStorage, states StateStore, mailer email.EmailSender, opts ...Option) *Provider {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.WebURL == "" {
		cfg.WebURL = cfg.BaseURL
	}
	if cfg.ResetPath == "" {
		cfg.ResetPath = "/reset-password"
	}
	p := &Provider{
		cfg:      cfg,
		accounts: accounts,
		states:   states,
		mailer:   mailer,
		adapters: make(map[string]OAuthAdapter),
		log:      logger.Discard(),
		now:      time.Now,
		compare:  bcrypt.CompareHashAndPassword,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.tr == nil {
		p.tr = i18n.MustNew(i18n.Builtin())
	}
	// An invalid cost leaves the hash nil; compare then fails fast.
	p.dummyHash, _ = bcrypt.GenerateFromPassword([]byte(uuid.NewString()), cfg.BcryptCost)
	p.log = p.log.With(logger.Component("identity"))
	return p
}

func fail(code string, err error) error {
	return auth.NewProviderError(code, err)
}

// storageFail maps storage errors; anything unexpected is a transport failure.
func storageFail(err error) error {
	switch {
	case errors.Is(err, ErrAccountNotFound):
		return fail(auth.CodeUserNotFound, err)
	case errors.Is(err, ErrEmailTaken):
		return fail(auth.CodeEmailAlreadyInUse, err)
	default:
		return fail(auth.CodeNetworkRequestFailed, err)
	}
}

func toUser(a *Account, providerID string) *auth.ProviderUser {
	return &auth.ProviderUser{
		UID:           a.ID.String(),
		Email:         a.Email,
		DisplayName:   a.DisplayName,
		PhotoURL:      a.PhotoURL,
		EmailVerified: a.EmailVerified,
		ProviderID:    providerID,
	}
}

func (p *Provider) account(ctx context.Context, uid string) (*Account, error) {
	id, err := uuid.Parse(uid)
	if err != nil {
		return nil, fail(auth.CodeUserNotFound, err)
	}
	acc, err := p.accounts.GetAccountByID(ctx, id)
	if err != nil {
		return nil, storageFail(err)
	}
	return acc, nil
}

func (p *Provider) checkPassword(password string) error {
	if password == "" {
		return fail(auth.CodeMissingPassword, nil)
	}
	if utf8.RuneCountInString(password) < p.cfg.MinPasswordLength {
		return fail(auth.CodeWeakPassword, nil)
	}
	return nil
}

func (p *Provider) CreateAccount(ctx context.Context, rawEmail, password string) (*auth.ProviderUser, error) {
	addr := sanitizer.NormalizeEmail(rawEmail)
	if !validator.IsEmail(addr) {
		return nil, fail(auth.CodeInvalidEmail, nil)
	}
	if err := p.checkPassword(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cfg.BcryptCost)
	if err != nil {
		return nil, fail(auth.CodeInternalError, err)
	}

	now := p.now().UTC()
	acc := &Account{
		ID:           uuid.New(),
		Email:        addr,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := p.accounts.CreateAccount(ctx, acc); err != nil {
		return nil, storageFail(err)
	}

	p.log.InfoContext(ctx, "account created", logger.UserID(acc.ID.String()), logger.Email(addr))
	return toUser(acc, profile.ProviderEmail), nil
}

func (p *Provider) SignIn(ctx context.Context, rawEmail, password string) (*auth.ProviderUser, error) {
	addr := sanitizer.NormalizeEmail(rawEmail)
	if !validator.IsEmail(addr) {
		return nil, fail(auth.CodeInvalidEmail, nil)
	}
	if password == "" {
		return nil, fail(auth.CodeMissingPassword, nil)
	}

	acc, err := p.accounts.GetAccountByEmail(ctx, addr)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			_ = p.compare(p.dummyHash, []byte(password))
		}
		return nil, storageFail(err)
	}
	if acc.Disabled {
		return nil, fail(auth.CodeUserDisabled, nil)
	}
	if !acc.HasPassword() {
		_ = p.compare(p.dummyHash, []byte(password))
		return nil, fail(auth.CodeInvalidCredential, nil)
	}
	if err := p.compare(acc.PasswordHash, []byte(password)); err != nil {
		return nil, fail(auth.CodeWrongPassword, nil)
	}
	return toUser(acc, profile.ProviderEmail), nil
}

func (p *Provider) UpdateProfile(ctx context.Context, uid, displayName string) error {
	id, err := uuid.Parse(uid)
	if err != nil {
		return fail(auth.CodeUserNotFound, err)
	}
	if err := p.accounts.UpdateDisplayName(ctx, id, sanitizer.DisplayName(displayName)); err != nil {
		return storageFail(err)
	}
	return nil
}

func (p *Provider) SignOut(ctx context.Context, uid string) error {
	id, err := uuid.Parse(uid)
	if err != nil {
		return fail(auth.CodeUserNotFound, err)
	}
	if err := p.accounts.MarkSignedOut(ctx, id, p.now().UTC()); err != nil {
		return storageFail(err)
	}
	return nil
}

func (p *Provider) SendEmailVerification(ctx context.Context, uid string) error {
	acc, err := p.account(ctx, uid)
	if err != nil {
		return err
	}

	code, err := p.issueCode(actionClaims{
		Subject: acc.ID.String(),
		Purpose: purposeVerifyEmail,
		Expires: p.now().Add(p.cfg.VerifyEmailTTL).Unix(),
	})
	if err != nil {
		return err
	}

	name := acc.DisplayName
	if name == "" {
		name = acc.Email
	}
	return p.send(ctx, acc.Email, "verify-email", "email.verify.subject", actionEmail{
		Greeting: p.tr.Tc(ctx, "email.verify.greeting", "name", name),
		Body:     p.tr.Tc(ctx, "email.verify.body"),
		Action:   p.tr.Tc(ctx, "email.verify.action"),
		Link:     link(p.cfg.BaseURL, "/auth/email/verify", code),
		Footer:   p.tr.Tc(ctx, "email.ignore"),
	})
}

func (p *Provider) SendPasswordReset(ctx context.Context, rawEmail string) error {
	addr := sanitizer.NormalizeEmail(rawEmail)
	if !validator.IsEmail(addr) {
		return fail(auth.CodeInvalidEmail, nil)
	}

	acc, err := p.accounts.GetAccountByEmail(ctx, addr)
	if err != nil {
		return storageFail(err)
	}
	if acc.Disabled {
		return fail(auth.CodeUserDisabled, nil)
	}

	code, err := p.issueCode(actionClaims{
		Subject:     acc.ID.String(),
		Purpose:     purposeResetPassword,
		Fingerprint: passwordFingerprint(acc.PasswordHash),
		Expires:     p.now().Add(p.cfg.PasswordResetTTL).Unix(),
	})
	if err != nil {
		return err
	}

	return p.send(ctx, acc.Email, "password-reset", "email.reset.subject", actionEmail{
		Greeting: p.tr.Tc(ctx, "email.reset.greeting"),
		Body:     p.tr.Tc(ctx, "email.reset.body", "minutes", int(p.cfg.PasswordResetTTL.Minutes())),
		Action:   p.tr.Tc(ctx, "email.reset.action"),
		Link:     link(p.cfg.WebURL, p.cfg.ResetPath, code),
		Footer:   p.tr.Tc(ctx, "email.ignore"),
	})
}

func (p *Provider) ApplyEmailVerification(ctx context.Context, code string) (*auth.ProviderUser, error) {
	claims, err := p.parseCode(code, purposeVerifyEmail)
	if err != nil {
		return nil, err
	}
	acc, err := p.account(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if !acc.EmailVerified {
		if err := p.accounts.SetEmailVerified(ctx, acc.ID); err != nil {
			return nil, storageFail(err)
		}
		acc.EmailVerified = true
	}
	return toUser(acc, profile.ProviderEmail), nil
}

func (p *Provider) ConfirmPasswordReset(ctx context.Context, code, newPassword string) error {
	claims, err := p.parseCode(code, purposeResetPassword)
	if err != nil {
		return err
	}
	if err := p.checkPassword(newPassword); err != nil {
		return err
	}
	acc, err := p.account(ctx, claims.Subject)
	if err != nil {
		return err
	}
	if claims.Fingerprint != passwordFingerprint(acc.PasswordHash) {
		return fail(auth.CodeInvalidActionCode, nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), p.cfg.BcryptCost)
	if err != nil {
		return fail(auth.CodeInternalError, err)
	}
	if err := p.accounts.SetPasswordHash(ctx, acc.ID, hash); err != nil {
		return storageFail(err)
	}
	p.log.InfoContext(ctx, "password reset", logger.UserID(acc.ID.String()))
	return nil
}

func (p *Provider) FederatedAuthURL(ctx context.Context, providerID string) (string, error) {
	adapter, ok := p.adapters[providerID]
	if !ok {
		return "", fail(auth.CodeOperationNotAllowed, nil)
	}

	state, err := randomState()
	if err != nil {
		return "", fail(auth.CodeInternalError, err)
	}
	if err := p.states.Save(ctx, state, providerID, p.cfg.StateTTL); err != nil {
		return "", fail(auth.CodeNetworkRequestFailed, err)
	}
	return adapter.AuthURL(state), nil
}

// SignInWithPopup completes the OAuth callback. An existing link signs in;
// an email owned by another account is a conflict; otherwise a new verified
// account is created and linked.
func (p *Provider) SignInWithPopup(ctx context.Context, req auth.FederatedRequest) (*auth.ProviderUser, error) {
	if req.Error != "" {
		if req.Error == "access_denied" {
			return nil, fail(auth.CodePopupClosedByUser, nil)
		}
		return nil, fail(auth.CodeCancelledPopupRequest, errors.New(req.Error))
	}

	adapter, ok := p.adapters[req.ProviderID]
	if !ok {
		return nil, fail(auth.CodeOperationNotAllowed, nil)
	}

	issuedFor, err := p.states.Consume(ctx, req.State)
	if errors.Is(err, ErrStateNotFound) {
		return nil, fail(auth.CodeInvalidCredential, err)
	}
	if err != nil {
		return nil, fail(auth.CodeNetworkRequestFailed, err)
	}
	if issuedFor != req.ProviderID {
		return nil, fail(auth.CodeInvalidCredential, errors.New("state issued for another provider"))
	}

	prof, err := adapter.ResolveProfile(ctx, req.Code)
	switch {
	case errors.Is(err, ErrInvalidCode), errors.Is(err, ErrNoPrimaryEmail):
		return nil, fail(auth.CodeInvalidCredential, err)
	case err != nil:
		return nil, fail(auth.CodeNetworkRequestFailed, err)
	}
	if p.cfg.VerifiedOnly && !prof.EmailVerified {
		return nil, fail(auth.CodeInvalidCredential, errors.New("provider email not verified"))
	}

	acc, err := p.accounts.GetAccountByProvider(ctx, req.ProviderID, prof.ProviderUserID)
	if err == nil {
		if acc.Disabled {
			return nil, fail(auth.CodeUserDisabled, nil)
		}
		return toUser(acc, req.ProviderID), nil
	}
	if !errors.Is(err, ErrAccountNotFound) {
		return nil, storageFail(err)
	}

	addr := sanitizer.NormalizeEmail(prof.Email)
	if _, err := p.accounts.GetAccountByEmail(ctx, addr); err == nil {
		return nil, fail(auth.CodeAccountExistsWithDifferent, nil)
	} else if !errors.Is(err, ErrAccountNotFound) {
		return nil, storageFail(err)
	}

	now := p.now().UTC()
	acc = &Account{
		ID:            uuid.New(),
		Email:         addr,
		DisplayName:   sanitizer.DisplayName(prof.Name),
		PhotoURL:      prof.AvatarURL,
		EmailVerified: prof.EmailVerified,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	err = p.accounts.CreateFederatedAccount(ctx, acc, req.ProviderID, prof.ProviderUserID)
	switch {
	case errors.Is(err, ErrEmailTaken):
		return nil, fail(auth.CodeAccountExistsWithDifferent, err)
	case errors.Is(err, ErrProviderLinked):
		return nil, fail(auth.CodeCredentialAlreadyInUse, err)
	case err != nil:
		return nil, storageFail(err)
	}

	p.log.InfoContext(ctx, "federated account created",
		logger.UserID(acc.ID.String()),
		logger.Provider(req.ProviderID),
	)
	return toUser(acc, req.ProviderID), nil
}

func (p *Provider) issueCode(c actionClaims) (string, error) {
	code, err := token.Generate(c, p.cfg.TokenSecret)
	if err != nil {
		return "", fail(auth.CodeInternalError, err)
	}
	return code, nil
}

func (p *Provider) parseCode(code, purpose string) (actionClaims, error) {
	claims, err := token.ParseAt[actionClaims](strings.TrimSpace(code), p.cfg.TokenSecret, p.now())
	if errors.Is(err, token.ErrExpired) {
		return claims, fail(auth.CodeExpiredActionCode, err)
	}
	if err != nil {
		return claims, fail(auth.CodeInvalidActionCode, err)
	}
	if claims.Purpose != purpose {
		return claims, fail(auth.CodeInvalidActionCode, errors.New("action code purpose mismatch"))
	}
	return claims, nil
}

func link(base, path, code string) string {
	return strings.TrimRight(base, "/") + path + "?" + url.Values{"code": {code}}.Encode()
}

func (p *Provider) send(ctx context.Context, to, tag, subjectKey string, body actionEmail) error {
	html, err := email.Render(ctx, body.component())
	if err != nil {
		return fail(auth.CodeInternalError, err)
	}
	err = p.mailer.SendEmail(ctx, email.SendEmailParams{
		SendTo:   to,
		Subject:  p.tr.Tc(ctx, subjectKey),
		BodyHTML: html,
		Tag:      tag,
	})
	if err != nil {
		p.log.ErrorContext(ctx, "send email failed", logger.Email(to), logger.Error(err))
		return fail(auth.CodeNetworkRequestFailed, err)
	}
	return nil
}

func randomState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

var _ auth.IdentityProvider = (*Provider)(nil)
