package session

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// GenerateID creates a new random session identifier.
func GenerateID() string {
	// 32 random bytes encoded as hex (64 chars)
	randomBytes := make([]byte, 32)
	rand.Read(randomBytes)
	return hex.EncodeToString(randomBytes)
}

// HashID returns the SHA256 hash of a session identifier. Persistent
// stores key rows by the hash so a leaked table doesn't leak usable
// session IDs.
func HashID(id string) string {
	hash := sha256.Sum256([]byte(id))
	return hex.EncodeToString(hash[:])
}
