package profile

import "errors"

var (
	ErrMissingUserID    = errors.New("profile: user id is required")
	ErrForbiddenField   = errors.New("profile: field must never be persisted")
	ErrUnknownField     = errors.New("profile: unknown field")
	ErrStoreWrite       = errors.New("profile: store write failed")
	ErrProfileNotFound  = errors.New("profile: not found")
	ErrDocumentNotFound = errors.New("profile: document not found")
)
