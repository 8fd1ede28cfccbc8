package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/finauth/pkg/logger"
)

var allowedFields = map[string]bool{
	FieldEmail:         true,
	FieldName:          true,
	FieldEmailVerified: true,
	FieldProvider:      true,
	FieldPhotoURL:      true,
	FieldCreatedAt:     true,
	FieldLastLogin:     true,
	FieldUpdatedAt:     true,
}

var forbiddenFields = []string{"password", "confirmPassword"}

// Store validates profile writes and forwards them to a DocumentStore.
type Store struct {
	docs DocumentStore
	log  *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

func WithLogger(l *slog.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// NewStore wraps docs.
func NewStore(docs DocumentStore, opts ...StoreOption) *Store {
	s := &Store{docs: docs, log: logger.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Upsert merges fields into the profile of userID. updatedAt is always
// stamped with ServerTimestamp; createdAt is only written on creation.
func (s *Store) Upsert(ctx context.Context, userID string, fields Fields) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ErrMissingUserID
	}

	set := make(map[string]any, len(fields)+1)
	var createOnly map[string]any
	for key, val := range fields {
		for _, f := range forbiddenFields {
			if strings.EqualFold(key, f) {
				return fmt.Errorf("%w: %s", ErrForbiddenField, key)
			}
		}
		if !allowedFields[key] {
			return fmt.Errorf("%w: %s", ErrUnknownField, key)
		}
		if key == FieldCreatedAt {
			createOnly = map[string]any{FieldCreatedAt: val}
			continue
		}
		set[key] = val
	}
	set[FieldUpdatedAt] = ServerTimestamp

	if err := s.docs.Merge(ctx, userID, set, createOnly); err != nil {
		s.log.ErrorContext(ctx, "profile merge failed",
			logger.Component("profile"),
			logger.UserID(userID),
			logger.Error(err),
		)
		return errors.Join(ErrStoreWrite, err)
	}
	return nil
}

// Get returns the stored profile or ErrProfileNotFound.
func (s *Store) Get(ctx context.Context, userID string) (*UserProfile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrMissingUserID
	}
	p, err := s.docs.Find(ctx, userID)
	if errors.Is(err, ErrDocumentNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}
