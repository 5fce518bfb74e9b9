package model

import (
	"crypto/sha1" // #nosec
	"encoding/hex"
)

// ContentHash yields the deterministic digest of a raw configuration
// payload, used as the cache key. SHA-1 collision resistance is
// sufficient here: the hash is a change detector, not an authenticator.
func ContentHash(data []byte) string {
	digest := sha1.Sum(data) // #nosec
	return hex.EncodeToString(digest[:])
}
