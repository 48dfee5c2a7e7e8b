package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint returns the first 8 bytes of sha256(key) in hex. Codes are
// bearer secrets, so logs and hooks carry this instead of the key.
func Fingerprint(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:8])
}
