package helpers

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateResetToken returns a cryptographically random 40-hex-character
// opaque token for password reset and email confirmation links.
func GenerateResetToken() (string, error) {
	b := make([]byte, 20)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
