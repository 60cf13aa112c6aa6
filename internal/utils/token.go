package utils

import (
	"crypto/rand"  // Secure random source for session tokens
	"encoding/hex" // Hex encoding
)

// NewSessionToken returns a fresh opaque bearer token: 32 random bytes,
// hex encoded. Unguessable; only ever matched against the sessions table.
func NewSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
