// Package token signs and verifies compact, URL-safe tokens: a base64url JSON
// payload followed by a base64url HMAC-SHA256 signature.
package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidToken     = errors.New("invalid token format")
	ErrSignatureInvalid = errors.New("token signature mismatch")
	ErrExpired          = errors.New("token expired")
)

// Expirer is implemented by payloads that carry their own expiry.
type Expirer interface {
	ExpiredAt(now time.Time) bool
}

// Generate encodes payload and signs it with secret.
func Generate[T any](payload T, secret string) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	enc := base64.RawURLEncoding
	return enc.EncodeToString(data) + "." + enc.EncodeToString(sign(data, secret)), nil
}

// Parse verifies the signature and decodes the payload. Payloads implementing
// Expirer are checked against the current time.
func Parse[T any](tok, secret string) (T, error) {
	return ParseAt[T](tok, secret, time.Now())
}

// ParseAt is Parse with the expiry judged at now.
func ParseAt[T any](tok, secret string, now time.Time) (T, error) {
	var payload T

	body, sigPart, ok := strings.Cut(tok, ".")
	if !ok || body == "" || sigPart == "" || strings.Contains(sigPart, ".") {
		return payload, ErrInvalidToken
	}
	data, err := base64.RawURLEncoding.DecodeString(body)
	if err != nil {
		return payload, errors.Join(ErrInvalidToken, err)
	}
	sig, err := base64.RawURLEncoding.DecodeString(sigPart)
	if err != nil {
		return payload, errors.Join(ErrInvalidToken, err)
	}
	if !hmac.Equal(sig, sign(data, secret)) {
		return payload, ErrSignatureInvalid
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return payload, errors.Join(ErrInvalidToken, err)
	}
	if exp, ok := any(payload).(Expirer); ok && exp.ExpiredAt(now) {
		return payload, ErrExpired
	}
	return payload, nil
}

func sign(data []byte, secret string) []byte {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(data)
	return h.Sum(nil)
}
