package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/finauth/pkg/i18n"
	"github.com/dmitrymomot/finauth/pkg/logger"
	"github.com/dmitrymomot/finauth/pkg/validator"
	"github.com/dmitrymomot/finauth/svc/profile"
)

// Service runs the account flows. It is built once per process and is safe
// for concurrent use. It never adds its own timeouts; callers bound ctx.
type Service struct {
	idp             IdentityProvider
	profiles        ProfileStore
	tr              Translator
	norm            *Normalizer
	log             *slog.Logger
	metrics         Metrics
	requireVerified bool
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. Defaults to a discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m Metrics) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithTranslator sets the message catalog. Defaults to the built-in catalogs.
func WithTranslator(tr Translator) Option {
	return func(s *Service) {
		if tr != nil {
			s.tr = tr
		}
	}
}

// WithRequireVerifiedEmail rejects password logins for unverified emails with
// UnverifiedEmail instead of warning.
func WithRequireVerifiedEmail(require bool) Option {
	return func(s *Service) {
		s.requireVerified = require
	}
}

// NewService creates a Service over the identity provider and profile store.
func NewService(idp IdentityProvider, profiles ProfileStore, opts ...Option) *Service {
	s := &Service{
		idp:      idp,
		profiles: profiles,
		log:      logger.Discard(),
		metrics:  noopMetrics{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tr == nil {
		s.tr = i18n.MustNew(i18n.Builtin())
	}
	s.norm = NewNormalizer(s.tr)
	s.log = s.log.With(logger.Component("auth"))
	return s
}

// call times one provider call.
func (s *Service) call(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	s.metrics.ObserveProviderCall(name, time.Since(start))
	return err
}

func (s *Service) succeed(ctx context.Context, op Operation, res Result, key string, args ...any) Result {
	res.Success = true
	res.Message = s.tr.Tc(ctx, key, args...)
	s.metrics.RecordOutcome(string(op), "ok")

	attrs := []any{logger.Operation(string(op)), slog.Int("warnings", len(res.Warnings))}
	if res.User != nil {
		attrs = append(attrs, logger.UserID(res.User.UserID))
	}
	s.log.InfoContext(ctx, "auth operation succeeded", attrs...)
	return res
}

// fail normalizes a provider failure.
func (s *Service) fail(ctx context.Context, op Operation, err error) Result {
	kind, msg := s.norm.Normalize(ctx, op, err)
	_, code := Classify(op, err)
	s.metrics.RecordOutcome(string(op), string(kind))

	attrs := []any{
		logger.Operation(string(op)),
		logger.ErrorKind(string(kind)),
		logger.ErrorCode(code),
		logger.Error(err),
	}
	switch kind {
	case Unknown, NetworkFailure:
		s.log.ErrorContext(ctx, "auth operation failed", attrs...)
	default:
		s.log.InfoContext(ctx, "auth operation rejected", attrs...)
	}

	if IsCancelled(err) {
		return Result{
			Cancelled: true,
			Error:     kind,
			Message:   s.tr.Tc(ctx, "auth.cancelled.popup"),
		}
	}
	return Result{Error: kind, Message: msg}
}

// reject reports a failure decided by the service itself, without a provider error.
func (s *Service) reject(ctx context.Context, op Operation, kind ErrorKind, userID string) Result {
	s.metrics.RecordOutcome(string(op), string(kind))
	s.log.InfoContext(ctx, "auth operation rejected",
		logger.Operation(string(op)),
		logger.ErrorKind(string(kind)),
		logger.UserID(userID),
	)
	return Result{Error: kind, Message: s.norm.Message(ctx, kind)}
}

// invalid reports local validation errors. No provider call has been made.
func (s *Service) invalid(ctx context.Context, op Operation, err error) Result {
	res := s.reject(ctx, op, InvalidInput, "")
	res.Fields = validator.ExtractValidationErrors(err).Map(func(key string, values map[string]any) string {
		args := make([]any, 0, len(values)*2)
		for k, v := range values {
			args = append(args, k, v)
		}
		return s.tr.Tc(ctx, key, args...)
	})
	return res
}

func (s *Service) warn(ctx context.Context, res *Result, op Operation, step string, err error) {
	res.Warnings = append(res.Warnings, Warning{
		Step:    step,
		Message: s.tr.Tc(ctx, "auth.warning."+step),
	})
	s.metrics.RecordWarning(step)

	attrs := []any{logger.Operation(string(op)), logger.Step(step)}
	if res.User != nil {
		attrs = append(attrs, logger.UserID(res.User.UserID))
	}
	if err != nil {
		attrs = append(attrs, logger.Error(err))
	}
	s.log.WarnContext(ctx, "auth step degraded", attrs...)
}

// upsertProfile writes fields; a failure degrades the result instead of failing it.
func (s *Service) upsertProfile(ctx context.Context, res *Result, op Operation, uid string, fields profile.Fields) {
	if err := s.profiles.Upsert(ctx, uid, fields); err != nil {
		s.warn(ctx, res, op, StepProfileUpsert, err)
	}
}

func summary(u *ProviderUser, provider string) *UserSummary {
	if u.ProviderID != "" {
		provider = u.ProviderID
	}
	return &UserSummary{
		UserID:        u.UID,
		Email:         u.Email,
		Name:          u.DisplayName,
		EmailVerified: u.EmailVerified,
		PhotoURL:      u.PhotoURL,
		Provider:      provider,
	}
}
