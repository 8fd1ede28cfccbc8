package auth

import (
	"context"
	"strings"

	"github.com/dmitrymomot/finauth/pkg/i18n"
)

// Operation names an orchestrator flow. It selects per-flow overrides in the
// normalizer and labels logs and metrics.
type Operation string

const (
	OpSignup               Operation = "signup"
	OpLogin                Operation = "login"
	OpPasswordReset        Operation = "password_reset"
	OpConfirmPasswordReset Operation = "confirm_password_reset"
	OpVerifyEmail          Operation = "verify_email"
	OpSignOut              Operation = "signout"
	OpFederatedURL         Operation = "federated_url"
	OpFederatedSignIn      Operation = "federated_signin"
)

// codeKinds is the single source of truth for provider code mapping.
var codeKinds = map[string]ErrorKind{
	CodeEmailAlreadyInUse:          DuplicateAccount,
	CodeWeakPassword:               WeakCredential,
	CodeUserNotFound:               InvalidCredential,
	CodeWrongPassword:              InvalidCredential,
	CodeInvalidCredential:          InvalidCredential,
	CodeInvalidEmail:               InvalidCredential,
	CodeMissingPassword:            InvalidInput,
	CodeUserDisabled:               AccountDisabled,
	CodeTooManyRequests:            RateLimited,
	CodePopupClosedByUser:          PopupDismissed,
	CodeCancelledPopupRequest:      PopupDismissed,
	CodePopupBlocked:               PopupDismissed,
	CodeNetworkRequestFailed:       NetworkFailure,
	CodeAccountExistsWithDifferent: ProviderConflict,
	CodeCredentialAlreadyInUse:     ProviderConflict,
	CodeOperationNotAllowed:        AccountDisabled,
	CodeExpiredActionCode:          InvalidActionCode,
	CodeInvalidActionCode:          InvalidActionCode,
	CodeInternalError:              Unknown,
}

// operationOverrides refine codeKinds for flows where the merged credential
// answer would be misleading and enumeration is not a concern.
var operationOverrides = map[Operation]map[string]ErrorKind{
	OpSignup: {
		CodeInvalidEmail: InvalidInput,
	},
	OpPasswordReset: {
		CodeUserNotFound: AccountNotFound,
		CodeInvalidEmail: InvalidInput,
	},
	OpConfirmPasswordReset: {
		CodeUserNotFound: InvalidActionCode,
	},
}

// unknownKeys replace the generic Unknown message for flows that have
// their own fallback wording. The raw code is not shown for these.
var unknownKeys = map[Operation]string{
	OpSignOut:       "auth.error.signout_failed",
	OpPasswordReset: "auth.error.reset_failed",
}

// Classify maps err to an ErrorKind for op. The raw provider code is returned
// for logging; it is empty for non-provider errors, which are treated as
// transport failures.
func Classify(op Operation, err error) (ErrorKind, string) {
	code, ok := ProviderCode(err)
	if !ok {
		return NetworkFailure, ""
	}
	if kind, ok := operationOverrides[op][code]; ok {
		return kind, code
	}
	if kind, ok := codeKinds[code]; ok {
		return kind, code
	}
	return Unknown, code
}

// Translator renders catalog messages. Implemented by *i18n.Translator.
type Translator interface {
	Tc(ctx context.Context, key string, args ...any) string
}

// Normalizer turns provider failures into a kind and a localized message.
type Normalizer struct {
	tr Translator
}

// NewNormalizer creates a Normalizer that localizes with tr.
func NewNormalizer(tr Translator) *Normalizer {
	return &Normalizer{tr: tr}
}

// Normalize returns the kind and display message for err. Only the generic
// Unknown fallback mentions the raw code; wrapped error text never appears.
func (n *Normalizer) Normalize(ctx context.Context, op Operation, err error) (ErrorKind, string) {
	kind, code := Classify(op, err)
	if kind == Unknown {
		if key, ok := unknownKeys[op]; ok {
			return kind, n.tr.Tc(ctx, key)
		}
		if code == "" {
			code = "unknown"
		}
		return kind, n.tr.Tc(ctx, messageKey(kind), "code", code)
	}
	return kind, n.tr.Tc(ctx, messageKey(kind))
}

// Message localizes the message of kind.
func (n *Normalizer) Message(ctx context.Context, kind ErrorKind) string {
	return n.tr.Tc(ctx, messageKey(kind))
}

// messageKey maps a kind to its catalog key, e.g. DuplicateAccount to
// auth.error.duplicate_account.
func messageKey(kind ErrorKind) string {
	var b strings.Builder
	b.WriteString("auth.error.")
	for i, r := range string(kind) {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// IsCancelled reports whether err means the user closed the sign-in popup.
func IsCancelled(err error) bool {
	kind, _ := Classify(OpFederatedSignIn, err)
	return kind == PopupDismissed
}

var _ Translator = (*i18n.Translator)(nil)
