package account

import (
	"net/http"

	"github.com/dmitrymomot/finauth/handler"
	"github.com/dmitrymomot/finauth/svc/auth"
)

type resultData struct {
	Message   string            `json:"message,omitempty"`
	User      *auth.UserSummary `json:"user,omitempty"`
	Cancelled bool              `json:"cancelled,omitempty"`
}

var kindStatus = map[auth.ErrorKind]int{
	auth.InvalidInput:      http.StatusUnprocessableEntity,
	auth.WeakCredential:    http.StatusUnprocessableEntity,
	auth.InvalidCredential: http.StatusUnauthorized,
	auth.UnverifiedEmail:   http.StatusUnauthorized,
	auth.InvalidActionCode: http.StatusUnauthorized,
	auth.DuplicateAccount:  http.StatusConflict,
	auth.ProviderConflict:  http.StatusConflict,
	auth.AccountDisabled:   http.StatusForbidden,
	auth.AccountNotFound:   http.StatusNotFound,
	auth.RateLimited:       http.StatusTooManyRequests,
	auth.NetworkFailure:    http.StatusServiceUnavailable,
	auth.StoreWriteFailure: http.StatusServiceUnavailable,
	auth.Unknown:           http.StatusInternalServerError,
}

// statusFor maps a failed result to an HTTP status.
func statusFor(kind auth.ErrorKind) int {
	if s, ok := kindStatus[kind]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// respond renders an auth.Result. Cancelled federated sign-in is not an error.
func respond(res auth.Result) handler.Response {
	meta := map[string]any{}
	if len(res.Warnings) > 0 {
		meta["warnings"] = res.Warnings
	}

	switch {
	case res.Success:
		return handler.JSON(resultData{Message: res.Message, User: res.User}, handler.WithJSONMeta(meta))
	case res.Cancelled:
		return handler.JSON(resultData{Message: res.Message, Cancelled: true}, handler.WithJSONMeta(meta))
	default:
		return handler.JSONError(&handler.ErrorDetail{
			Code:    string(res.Error),
			Message: res.Message,
			Details: res.Fields,
		}, handler.WithJSONStatus(statusFor(res.Error)), handler.WithJSONMeta(meta))
	}
}
