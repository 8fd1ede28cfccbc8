package auth

import (
	"errors"
	"fmt"
)

// ErrorKind is the caller-facing failure taxonomy.
type ErrorKind string

const (
	InvalidInput      ErrorKind = "InvalidInput"
	DuplicateAccount  ErrorKind = "DuplicateAccount"
	WeakCredential    ErrorKind = "WeakCredential"
	InvalidCredential ErrorKind = "InvalidCredential"
	AccountDisabled   ErrorKind = "AccountDisabled"
	AccountNotFound   ErrorKind = "AccountNotFound"
	RateLimited       ErrorKind = "RateLimited"
	PopupDismissed    ErrorKind = "PopupDismissed"
	ProviderConflict  ErrorKind = "ProviderConflict"
	NetworkFailure    ErrorKind = "NetworkFailure"
	StoreWriteFailure ErrorKind = "StoreWriteFailure"
	UnverifiedEmail   ErrorKind = "UnverifiedEmail"
	InvalidActionCode ErrorKind = "InvalidActionCode"
	Unknown           ErrorKind = "Unknown"
)

// Identity provider error codes.
const (
	CodeEmailAlreadyInUse          = "auth/email-already-in-use"
	CodeWeakPassword               = "auth/weak-password"
	CodeUserNotFound               = "auth/user-not-found"
	CodeWrongPassword              = "auth/wrong-password"
	CodeInvalidCredential          = "auth/invalid-credential"
	CodeInvalidEmail               = "auth/invalid-email"
	CodeMissingPassword            = "auth/missing-password"
	CodeUserDisabled               = "auth/user-disabled"
	CodeTooManyRequests            = "auth/too-many-requests"
	CodePopupClosedByUser          = "auth/popup-closed-by-user"
	CodeCancelledPopupRequest      = "auth/cancelled-popup-request"
	CodePopupBlocked               = "auth/popup-blocked"
	CodeNetworkRequestFailed       = "auth/network-request-failed"
	CodeAccountExistsWithDifferent = "auth/account-exists-with-different-credential"
	CodeCredentialAlreadyInUse     = "auth/credential-already-in-use"
	CodeOperationNotAllowed        = "auth/operation-not-allowed"
	CodeExpiredActionCode          = "auth/expired-action-code"
	CodeInvalidActionCode          = "auth/invalid-action-code"
	CodeInternalError              = "auth/internal-error"
)

// ProviderError is the only error shape an IdentityProvider returns for
// domain failures. Code is one of the Code* constants; Err is kept for logs.
type ProviderError struct {
	Code string
	Err  error
}

// NewProviderError wraps err with a provider code.
func NewProviderError(code string, err error) *ProviderError {
	return &ProviderError{Code: code, Err: err}
}

func (e *ProviderError) Error() string {
	if e.Err == nil {
		return e.Code
	}
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// ProviderCode extracts the provider code from err, if any.
func ProviderCode(err error) (string, bool) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Code, true
	}
	return "", false
}
