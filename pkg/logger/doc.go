// Package logger builds log/slog loggers with environment-aware defaults and
// provides attribute helpers so every component logs the same keys
// (user_id, component, operation, error_kind, provider, ...).
//
//	log := logger.New(
//	    logger.WithEnvironment(environment.Production, "finauth"),
//	    logger.WithContextExtractors(requestIDFromContext),
//	)
//	log.ErrorContext(ctx, "profile upsert failed",
//	    logger.Component("auth"),
//	    logger.UserID(id),
//	    logger.Error(err),
//	)
//
// Email addresses passed through logger.Email are masked.
package logger
