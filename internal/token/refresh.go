package token

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

const refreshValueBytes = 32

// NewRefreshValue returns an opaque, unguessable refresh token value.
func NewRefreshValue() (string, error) {
	b := make([]byte, refreshValueBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// HashRefreshValue returns the digest stored in the ledger for value.
func HashRefreshValue(value string) []byte {
	h := sha256.Sum256([]byte(value))
	return h[:]
}
