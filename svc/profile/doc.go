// Package profile keeps the denormalized user profile document in sync with
// the identity provider.
//
// Writes are merges keyed by the provider-issued user id: only the given
// fields are touched, updatedAt is stamped on every write and createdAt is
// written only when the document does not have one yet. Timestamps passed as
// ServerTimestamp are resolved by the backend, not by the caller's clock.
//
// Two backends are provided: MongoStore for production and MemoryStore for
// tests and local development.
package profile
