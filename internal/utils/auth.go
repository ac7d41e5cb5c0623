package utils

import (
	"crypto/rand"
	"fmt"
)

const accessKeyPrefix = "AIR-"

// 🎲 GenerateRandomString generates a random string of specified length using crypto/rand
func GenerateRandomString(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)

	// 🔒 Use crypto/rand for secure random generation
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random string: %w", err)
	}

	// 🔄 Map random bytes to charset
	for i := 0; i < length; i++ {
		b[i] = charset[b[i]%byte(len(charset))]
	}

	return string(b), nil
}

// GenerateAccessKey mints a new grant-targeting key, e.g. AIR-X2J9QK7M.
// Uppercase without 0/O and 1/I so admins can read it back over chat.
func GenerateAccessKey() (string, error) {
	const charset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate access key: %w", err)
	}
	for i := range b {
		b[i] = charset[b[i]%byte(len(charset))]
	}
	return accessKeyPrefix + string(b), nil
}

// FormatCustomID renders the human-facing sequential profile id.
func FormatCustomID(seq int64) string {
	return fmt.Sprintf("EXP-%04d", seq)
}
