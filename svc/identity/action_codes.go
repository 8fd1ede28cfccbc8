package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

const (
	purposeVerifyEmail   = "verify_email"
	purposeResetPassword = "reset_password"
)

// actionClaims is the payload of verification and reset codes.
type actionClaims struct {
	Subject     string `json:"sub"`
	Purpose     string `json:"pur"`
	Fingerprint string `json:"fp,omitempty"`
	Expires     int64  `json:"exp"`
}

func (c actionClaims) ExpiredAt(now time.Time) bool {
	return now.Unix() >= c.Expires
}

// passwordFingerprint ties a reset code to the hash it replaces, so a code
// stops working once the password changes.
func passwordFingerprint(hash []byte) string {
	sum := sha256.Sum256(hash)
	return hex.EncodeToString(sum[:8])
}
