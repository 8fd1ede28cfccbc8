// Package auth orchestrates account flows (signup, login, password reset,
// sign-out and federated sign-in) on top of an IdentityProvider and keeps the
// user profile document in sync.
//
// Every operation returns a Result and never an error: local validation runs
// before any network call, provider failures are normalized into a small
// ErrorKind taxonomy with a localized message, and failures of best-effort
// steps after a successful provider call are reported as warnings on a
// successful Result.
//
// Provider errors are never shown verbatim. Login failures caused by an
// unknown email, a wrong password or a malformed email all map to
// InvalidCredential so callers cannot learn whether an account exists.
package auth
