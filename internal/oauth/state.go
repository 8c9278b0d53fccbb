package oauth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

const stateBytes = 32

// returns a url-safe random CSRF state
func GenerateState() (string, error) {
	b := make([]byte, stateBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate oauth state: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}
