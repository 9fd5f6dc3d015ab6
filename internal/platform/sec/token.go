// Copyright (c) 2026 Rerec. All rights reserved.

package sec

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateSecureToken returns a cryptographically random opaque token.
//
// The token carries no structure: it is only meaningful as a lookup key in
// the session store. byteLength is the entropy in bytes; the returned hex
// string is twice that length.
func GenerateSecureToken(byteLength int) (string, error) {
	buffer := make([]byte, byteLength)
	if _, err := rand.Read(buffer); err != nil {
		return "", fmt.Errorf("sec: failed to generate secure token: %w", err)
	}
	return hex.EncodeToString(buffer), nil
}
