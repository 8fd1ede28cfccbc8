package identity

import "errors"

var (
	ErrAccountNotFound = errors.New("identity: account not found")
	ErrEmailTaken      = errors.New("identity: email already registered")
	ErrProviderLinked  = errors.New("identity: provider account already linked")
	ErrStateNotFound   = errors.New("identity: oauth state not found or expired")
	ErrInvalidCode     = errors.New("identity: invalid oauth code")
	ErrNoPrimaryEmail  = errors.New("identity: no verified email from provider")
)
