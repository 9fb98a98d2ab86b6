package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash returns the SHA-256 of data as a 64-character hex string. It is
// used both for filesystem-safe cache filenames and for content-addressed
// keys such as distance-matrix hashes.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
