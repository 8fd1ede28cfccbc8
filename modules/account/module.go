package account

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/finauth/handler"
	"github.com/dmitrymomot/finauth/pkg/i18n"
	"github.com/dmitrymomot/finauth/pkg/logger"
	"github.com/dmitrymomot/finauth/svc/auth"
)

// Authenticator is the subset of *auth.Service the module drives.
type Authenticator interface {
	Signup(ctx context.Context, creds auth.Credentials, p auth.SignupProfile) auth.Result
	Login(ctx context.Context, creds auth.Credentials) auth.Result
	RequestPasswordReset(ctx context.Context, email string) auth.Result
	ConfirmPasswordReset(ctx context.Context, code string, creds auth.Credentials) auth.Result
	ConfirmEmailVerification(ctx context.Context, code string) auth.Result
	SignOut(ctx context.Context, userID string) auth.Result
	FederatedAuthURL(ctx context.Context, providerID string) auth.Result
	SignInWithProvider(ctx context.Context, req auth.FederatedRequest) auth.Result
}

// Module serves the account API.
type Module struct {
	auth    Authenticator
	tr      *i18n.Translator
	log     *slog.Logger
	timeout time.Duration
}

// Option configures a Module.
type Option func(*Module)

func WithLogger(l *slog.Logger) Option {
	return func(m *Module) {
		if l != nil {
			m.log = l
		}
	}
}

// WithTimeout bounds every request. Defaults to 15s.
func WithTimeout(d time.Duration) Option {
	return func(m *Module) {
		if d > 0 {
			m.timeout = d
		}
	}
}

// New creates the module.
func New(a Authenticator, tr *i18n.Translator, opts ...Option) *Module {
	m := &Module{
		auth:    a,
		tr:      tr,
		log:     logger.Discard(),
		timeout: 15 * time.Second,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.log = m.log.With(logger.Component("account"))
	return m
}

// Router returns the module routes with locale negotiation and a request
// deadline applied.
func (m *Module) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(m.tr.Middleware)
	r.Use(middleware.Timeout(m.timeout))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", handler.Wrap(m.signup))
		r.Post("/login", handler.Wrap(m.login))
		r.Post("/password/reset", handler.Wrap(m.requestPasswordReset))
		r.Post("/password/confirm", handler.Wrap(m.confirmPasswordReset))
		r.Post("/email/verify", handler.Wrap(m.verifyEmail))
		r.Get("/email/verify", handler.Wrap(m.verifyEmail, handler.WithBinder(bindCodeQuery)))
		r.Post("/signout", handler.Wrap(m.signOut))
		r.Get("/{provider}/start", handler.Wrap(m.federatedStart, handler.WithBinder(handler.NoBind)))
		r.Get("/{provider}/callback", handler.Wrap(m.federatedCallback, handler.WithBinder(bindCallback)))
	})

	r.Route("/validate", func(r chi.Router) {
		r.Post("/password", handler.Wrap(m.validatePassword))
		r.Post("/national-id", handler.Wrap(m.validateNationalID))
		r.Post("/email", handler.Wrap(m.validateEmail))
	})

	return r
}

var _ Authenticator = (*auth.Service)(nil)
