package auth

import (
	"crypto/rand"
	"encoding/hex"
)

// Opaque token sizes in bytes of randomness before hex encoding.
const (
	InviteTokenBytes  = 32
	RefreshTokenBytes = 64
)

// GenerateOpaqueToken returns a hex-encoded string with n bytes of
// cryptographic randomness.
func GenerateOpaqueToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
