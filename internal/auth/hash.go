package auth

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// hashPassword returns the SHA3-256 hex digest of the plaintext.
//
// The digest is deliberately unsalted so stored digests stay compatible
// with the existing user base. This is a known weakness: equal passwords
// produce equal digests. A salted, versioned format is the migration path.
func hashPassword(plaintext string) string {
	digest := sha3.Sum256([]byte(plaintext))
	return hex.EncodeToString(digest[:])
}
