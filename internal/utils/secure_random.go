package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// GenerateSecureRandomString generates a cryptographically secure random
// string of the specified byte length, hex encoded.
func GenerateSecureRandomString(lengthInBytes int) (string, error) {
	if lengthInBytes <= 0 {
		return "", fmt.Errorf("lengthInBytes must be positive")
	}
	b := make([]byte, lengthInBytes)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateTransferReference produces a short human-readable reference code
// for inter-store transfers, e.g. "IST-4F2A9C".
func GenerateTransferReference() (string, error) {
	s, err := GenerateSecureRandomString(3)
	if err != nil {
		return "", err
	}
	return "IST-" + strings.ToUpper(s), nil
}
