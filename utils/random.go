package utils

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// GenerateCode returns an uppercase hex code of 2*n characters, used as the
// human-facing reference stamped on each offer.
func GenerateCode(n int) (string, error) {
	byt := make([]byte, n)

	if _, err := rand.Read(byt); err != nil {
		return "", err
	}

	return strings.ToUpper(hex.EncodeToString(byt)), nil
}

// NewIdempotencyKey mints a key for a logical submission when the client did
// not supply one.
func NewIdempotencyKey() string {
	return uuid.NewString()
}
