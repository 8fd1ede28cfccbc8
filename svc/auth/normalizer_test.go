package auth_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/finauth/pkg/i18n"
	"github.com/dmitrymomot/finauth/svc/auth"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		op   auth.Operation
		code string
		want auth.ErrorKind
	}{
		{auth.OpSignup, auth.CodeEmailAlreadyInUse, auth.DuplicateAccount},
		{auth.OpSignup, auth.CodeWeakPassword, auth.WeakCredential},
		{auth.OpSignup, auth.CodeInvalidEmail, auth.InvalidInput},
		{auth.OpLogin, auth.CodeUserNotFound, auth.InvalidCredential},
		{auth.OpLogin, auth.CodeWrongPassword, auth.InvalidCredential},
		{auth.OpLogin, auth.CodeInvalidCredential, auth.InvalidCredential},
		{auth.OpLogin, auth.CodeInvalidEmail, auth.InvalidCredential},
		{auth.OpLogin, auth.CodeMissingPassword, auth.InvalidInput},
		{auth.OpLogin, auth.CodeUserDisabled, auth.AccountDisabled},
		{auth.OpLogin, auth.CodeTooManyRequests, auth.RateLimited},
		{auth.OpLogin, auth.CodeNetworkRequestFailed, auth.NetworkFailure},
		{auth.OpPasswordReset, auth.CodeUserNotFound, auth.AccountNotFound},
		{auth.OpPasswordReset, auth.CodeInvalidEmail, auth.InvalidInput},
		{auth.OpFederatedSignIn, auth.CodePopupClosedByUser, auth.PopupDismissed},
		{auth.OpFederatedSignIn, auth.CodeCancelledPopupRequest, auth.PopupDismissed},
		{auth.OpFederatedSignIn, auth.CodeAccountExistsWithDifferent, auth.ProviderConflict},
		{auth.OpFederatedSignIn, auth.CodeCredentialAlreadyInUse, auth.ProviderConflict},
		{auth.OpVerifyEmail, auth.CodeExpiredActionCode, auth.InvalidActionCode},
		{auth.OpConfirmPasswordReset, auth.CodeUserNotFound, auth.InvalidActionCode},
		{auth.OpLogin, auth.CodeInternalError, auth.Unknown},
		{auth.OpLogin, "auth/quota-exceeded", auth.Unknown},
	}
	for _, tt := range tests {
		t.Run(string(tt.op)+" "+tt.code, func(t *testing.T) {
			t.Parallel()
			kind, code := auth.Classify(tt.op, fmt.Errorf("wrapped: %w", auth.NewProviderError(tt.code, nil)))
			assert.Equal(t, tt.want, kind)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestClassify_NonProviderErrors(t *testing.T) {
	t.Parallel()

	for _, err := range []error{context.DeadlineExceeded, context.Canceled, errors.New("dial tcp: refused")} {
		kind, code := auth.Classify(auth.OpLogin, err)
		assert.Equal(t, auth.NetworkFailure, kind)
		assert.Empty(t, code)
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	norm := auth.NewNormalizer(i18n.MustNew(i18n.Builtin()))
	ctx := context.Background()

	kind, msg := norm.Normalize(ctx, auth.OpLogin, auth.NewProviderError("auth/quota-exceeded", errors.New("secret stack trace")))
	assert.Equal(t, auth.Unknown, kind)
	assert.Contains(t, msg, "auth/quota-exceeded")
	assert.NotContains(t, msg, "secret")

	kind, msg = norm.Normalize(ctx, auth.OpLogin, auth.NewProviderError(auth.CodeWrongPassword, errors.New("hash mismatch")))
	assert.Equal(t, auth.InvalidCredential, kind)
	assert.Equal(t, "E-mail ou senha inválidos.", msg)

	_, msg = norm.Normalize(i18n.WithLocale(ctx, language.English), auth.OpLogin, auth.NewProviderError(auth.CodeUserDisabled, nil))
	assert.Equal(t, "This account has been disabled.", msg)
}

func TestNormalize_OperationFallback(t *testing.T) {
	t.Parallel()

	norm := auth.NewNormalizer(i18n.MustNew(i18n.Builtin()))
	ctx := context.Background()

	tests := []struct {
		name string
		op   auth.Operation
		err  error
		want string
	}{
		{"sign out", auth.OpSignOut, auth.NewProviderError(auth.CodeInternalError, nil), "Erro ao fazer logout."},
		{"password reset", auth.OpPasswordReset, auth.NewProviderError("auth/quota-exceeded", nil), "Não foi possível enviar o e-mail de redefinição."},
		{"other flows keep the code", auth.OpLogin, auth.NewProviderError(auth.CodeInternalError, nil), "Ocorreu um erro inesperado (auth/internal-error)."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			kind, msg := norm.Normalize(ctx, tt.op, tt.err)
			assert.Equal(t, auth.Unknown, kind)
			assert.Equal(t, tt.want, msg)
		})
	}

	_, msg := norm.Normalize(i18n.WithLocale(ctx, language.English), auth.OpSignOut, auth.NewProviderError(auth.CodeInternalError, nil))
	assert.Equal(t, "Could not sign out.", msg)
}

func TestNormalize_EveryKindHasMessage(t *testing.T) {
	t.Parallel()

	tr := i18n.MustNew(i18n.Builtin())
	norm := auth.NewNormalizer(tr)
	kinds := []auth.ErrorKind{
		auth.InvalidInput, auth.DuplicateAccount, auth.WeakCredential, auth.InvalidCredential,
		auth.AccountDisabled, auth.AccountNotFound, auth.RateLimited, auth.PopupDismissed,
		auth.ProviderConflict, auth.NetworkFailure, auth.StoreWriteFailure, auth.UnverifiedEmail,
		auth.InvalidActionCode,
	}
	for _, lang := range tr.Languages() {
		ctx := i18n.WithLocale(context.Background(), lang)
		for _, k := range kinds {
			msg := norm.Message(ctx, k)
			assert.NotContains(t, msg, "auth.error.", "%s %s", lang, k)
		}
	}
}

func TestProviderError(t *testing.T) {
	t.Parallel()

	inner := errors.New("boom")
	err := fmt.Errorf("ctx: %w", auth.NewProviderError(auth.CodeInternalError, inner))
	code, ok := auth.ProviderCode(err)
	require.True(t, ok)
	assert.Equal(t, auth.CodeInternalError, code)
	assert.ErrorIs(t, err, inner)

	_, ok = auth.ProviderCode(inner)
	assert.False(t, ok)
	assert.True(t, auth.IsCancelled(auth.NewProviderError(auth.CodePopupClosedByUser, nil)))
}
