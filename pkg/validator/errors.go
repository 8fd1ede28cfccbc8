package validator

import "errors"

var (
	// ErrPasswordTooShort blocks passwords below the minimum length.
	// An empty password is not an error: the field has simply not been filled yet.
	ErrPasswordTooShort = errors.New("password is too short")
)
