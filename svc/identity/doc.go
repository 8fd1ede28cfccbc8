// Package identity is a self-hosted identity provider implementing
// auth.IdentityProvider.
//
// Accounts and bcrypt password hashes live in PostgreSQL, one-time OAuth
// state in Redis, and verification and reset links are signed action codes
// mailed through an email.EmailSender. Google and GitHub sign-in go through
// golang.org/x/oauth2.
//
// Every failure is returned as *auth.ProviderError carrying one of the auth
// Code* constants; storage and transport failures surface as
// auth.CodeNetworkRequestFailed.
package identity
