package profile

import (
	"context"
	"time"
)

// Persisted field names.
const (
	FieldEmail         = "email"
	FieldName          = "name"
	FieldEmailVerified = "emailVerified"
	FieldProvider      = "provider"
	FieldPhotoURL      = "photoURL"
	FieldCreatedAt     = "createdAt"
	FieldLastLogin     = "lastLogin"
	FieldUpdatedAt     = "updatedAt"
)

// Sign-in methods stored in the provider field.
const (
	ProviderEmail  = "email"
	ProviderGoogle = "google"
	ProviderGitHub = "github"
)

// Fields is a partial profile update keyed by persisted field name.
type Fields map[string]any

type serverTimestamp struct{}

// ServerTimestamp asks the backend to fill the field with its own clock at write time.
var ServerTimestamp = serverTimestamp{}

// IsServerTimestamp reports whether v is the ServerTimestamp marker.
func IsServerTimestamp(v any) bool {
	_, ok := v.(serverTimestamp)
	return ok
}

// UserProfile is the stored profile document. Passwords are never part of it.
type UserProfile struct {
	UserID        string    `bson:"_id" json:"user_id"`
	Email         string    `bson:"email,omitempty" json:"email"`
	Name          string    `bson:"name,omitempty" json:"name"`
	EmailVerified bool      `bson:"emailVerified" json:"email_verified"`
	Provider      string    `bson:"provider,omitempty" json:"provider"`
	PhotoURL      string    `bson:"photoURL,omitempty" json:"photo_url,omitempty"`
	CreatedAt     time.Time `bson:"createdAt,omitempty" json:"created_at"`
	LastLogin     time.Time `bson:"lastLogin,omitempty" json:"last_login"`
	UpdatedAt     time.Time `bson:"updatedAt,omitempty" json:"updated_at"`
}

// DocumentStore is a keyed document backend with merge semantics.
type DocumentStore interface {
	// Merge writes set unconditionally and createOnly only for fields the
	// document does not have yet, creating the document when missing.
	// Values may be ServerTimestamp.
	Merge(ctx context.Context, id string, set, createOnly map[string]any) error
	// Find returns ErrDocumentNotFound when there is no document for id.
	Find(ctx context.Context, id string) (*UserProfile, error)
}
