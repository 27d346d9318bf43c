package account

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// NumberPrefix returns the account-number prefix for an account type.
func NumberPrefix(t Type) string {
	if t == TypeSavings {
		return "SAV"
	}
	return "CHK"
}

// NewNumber generates an account number in the form {PREFIX}-{8 hex}.
func NewNumber(prefix string) (string, error) {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("generate account number: %w", err)
	}
	return fmt.Sprintf("%s-%s", prefix, hex.EncodeToString(buf[:])), nil
}
