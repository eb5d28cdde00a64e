package crypto

import (
	"crypto/rand"
	"encoding/hex"
)

// NewToken returns a cryptographically random 64-character hex token, used
// for sessions, invitations, and email verification.
func NewToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
