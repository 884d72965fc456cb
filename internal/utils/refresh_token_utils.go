package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashRefreshToken generates a SHA256 hash of a refresh token.
// Only this hash is stored on the user record.
func HashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// CompareRefreshTokenHash compares a plain refresh token with its stored SHA256 hash.
// The `token` parameter is the raw token string, not a hash.
func CompareRefreshTokenHash(token string, storedHash string) bool {
	if storedHash == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(HashRefreshToken(token)), []byte(storedHash)) == 1
}
