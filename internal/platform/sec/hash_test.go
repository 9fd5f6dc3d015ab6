// Copyright (c) 2026 Rerec. All rights reserved.

package sec_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ladekjaer/rerec/internal/platform/sec"
)

/*
TestHashPassword_RoundTrip verifies that a hashed password verifies against
its own plain text.
*/
func TestHashPassword_RoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple", "securepassword123"},
		{"unicode", "pässwörd-日本語"},
		{"empty", ""},
		{"long", strings.Repeat("x", 256)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := sec.HashPassword(tt.password)
			require.NoError(t, err)
			require.NotEmpty(t, hash)

			ok, err := sec.VerifyPassword(hash, tt.password)
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

/*
TestVerifyPassword_Mismatch checks that a wrong candidate is a normal false
result, not an error.
*/
func TestVerifyPassword_Mismatch(t *testing.T) {
	hash, err := sec.HashPassword("securepassword123")
	require.NoError(t, err)

	ok, err := sec.VerifyPassword(hash, "not the password")
	require.NoError(t, err)
	assert.False(t, ok)
}

/*
TestHashPassword_SaltUniqueness verifies that hashing the same password twice
yields two different encodings.
*/
func TestHashPassword_SaltUniqueness(t *testing.T) {
	first, err := sec.HashPassword("securepassword123")
	require.NoError(t, err)

	second, err := sec.HashPassword("securepassword123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

/*
TestVerifyPassword_MalformedHash verifies that a corrupted stored hash is
surfaced as ErrMalformedHash, distinct from a credential mismatch.
*/
func TestVerifyPassword_MalformedHash(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
	}{
		{"empty", ""},
		{"not_phc", "plaintext-leak"},
		{"wrong_algorithm", "$bcrypt$v=19$m=65536,t=3,p=2$c2FsdA$a2V5"},
		{"bad_version", "$argon2id$v=notanumber$m=65536,t=3,p=2$c2FsdA$a2V5"},
		{"bad_salt", "$argon2id$v=19$m=65536,t=3,p=2$!!!$a2V5"},
		{"truncated", "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA"},
		// Records that parse but carry impossible cost parameters would
		// make the key derivation panic; they must be rejected as
		// corruption before it runs.
		{"zero_iterations", "$argon2id$v=19$m=65536,t=0,p=2$c2FsdA$a2V5"},
		{"zero_parallelism", "$argon2id$v=19$m=65536,t=3,p=0$c2FsdA$a2V5"},
		{"memory_below_minimum", "$argon2id$v=19$m=4,t=3,p=2$c2FsdA$a2V5"},
		{"memory_absurdly_large", "$argon2id$v=19$m=4294967295,t=3,p=2$c2FsdA$a2V5"},
		{"empty_salt_and_key", "$argon2id$v=19$m=65536,t=3,p=2$$"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := sec.VerifyPassword(tt.encoded, "whatever")
			assert.False(t, ok)
			require.Error(t, err)
			assert.ErrorIs(t, err, sec.ErrMalformedHash)
		})
	}
}

/*
TestGenerateSecureToken verifies token length and uniqueness.
*/
func TestGenerateSecureToken(t *testing.T) {
	first, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)
	assert.Len(t, first, 64) // hex doubles the byte length

	second, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
