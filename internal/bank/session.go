package bank

import (
	"crypto/sha256"
	"encoding/base64"
)

// deriveSessionKey computes session_key = base64url(SHA-256(username ∥
// password))[0..32], deterministic for a (username, password) pair, per
// spec.md §4.1. It is treated as a bearer credential (spec.md §9 Open
// Question 3) and must never be logged — see logging.RedactSessionKey.
func deriveSessionKey(username, password string) string {
	sum := sha256.Sum256([]byte(username + password))
	encoded := base64.URLEncoding.EncodeToString(sum[:])
	if len(encoded) > 32 {
		encoded = encoded[:32]
	}
	return encoded
}
