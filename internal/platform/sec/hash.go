// Copyright (c) 2026 Rerec. All rights reserved.

// Package sec provides cryptographic primitives for the platform.
//
// # Architecture
//
// This package isolates security-sensitive code (password hashing, session
// token generation) from the domain logic. It is a pure function layer:
// no I/O, no shared mutable state, safe for concurrent use.
package sec

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters.
//
// These follow the current OWASP baseline: 64 MiB memory, 3 passes. Memory
// hardness is the point — brute forcing a stolen hash table must be
// expensive on GPU farms, not just slow on a CPU.
const (
	argonMemory      = 64 * 1024
	argonIterations  = 3
	argonParallelism = 2
	argonSaltLength  = 16
	argonKeyLength   = 32

	// argonMaxMemory caps the memory parameter accepted from a stored
	// record (4 GiB in KiB units). Anything above is corruption, not a
	// tuning choice, and would let one login attempt exhaust the host.
	argonMaxMemory = 4 * 1024 * 1024
)

// ErrMalformedHash reports a stored password hash that cannot be parsed.
//
// This is a storage-corruption signal, distinct from a wrong password.
// Callers must treat it as an internal failure, never as "credentials
// rejected".
var ErrMalformedHash = errors.New("sec: malformed password hash")

// HashPassword derives an argon2id hash of a plain-text password.
//
// A fresh random salt is drawn on every call, so hashing the same password
// twice yields two different encodings. The result is a self-describing
// PHC-format string:
//
//	$argon2id$v=19$m=65536,t=3,p=2$<salt>$<key>
func HashPassword(plainTextPassword string) (string, error) {
	salt := make([]byte, argonSaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("sec: failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(plainTextPassword), salt, argonIterations, argonMemory, argonParallelism, argonKeyLength)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argonMemory,
		argonIterations,
		argonParallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)

	return encoded, nil
}

// VerifyPassword reports whether the candidate password reproduces the
// stored hash.
//
// A mismatch is (false, nil) — the normal "wrong password" outcome. An
// error is returned only when encodedHash is not a well-formed argon2id
// record, wrapping [ErrMalformedHash].
//
// The key comparison is constant-time, so verification cost does not
// depend on where the derived keys diverge.
func VerifyPassword(encodedHash, candidatePassword string) (bool, error) {
	salt, key, memory, iterations, parallelism, err := decodeHash(encodedHash)
	if err != nil {
		return false, err
	}

	candidateKey := argon2.IDKey([]byte(candidatePassword), salt, iterations, memory, parallelism, uint32(len(key)))

	return subtle.ConstantTimeCompare(key, candidateKey) == 1, nil
}

// decodeHash splits a PHC-format argon2id string into its parameters.
func decodeHash(encodedHash string) (salt, key []byte, memory, iterations uint32, parallelism uint8, err error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, nil, 0, 0, 0, fmt.Errorf("%w: unexpected format", ErrMalformedHash)
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, 0, 0, 0, fmt.Errorf("%w: unreadable version", ErrMalformedHash)
	}
	if version != argon2.Version {
		return nil, nil, 0, 0, 0, fmt.Errorf("%w: incompatible argon2 version %d", ErrMalformedHash, version)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism); err != nil {
		return nil, nil, 0, 0, 0, fmt.Errorf("%w: unreadable parameters", ErrMalformedHash)
	}

	// The key derivation panics on out-of-range parameters, so a record
	// that parses but carries impossible values is still corruption and
	// must surface as a malformed hash, never reach argon2.
	if iterations < 1 || parallelism < 1 {
		return nil, nil, 0, 0, 0, fmt.Errorf("%w: invalid cost parameters", ErrMalformedHash)
	}
	if memory < 8*uint32(parallelism) || memory > argonMaxMemory {
		return nil, nil, 0, 0, 0, fmt.Errorf("%w: implausible memory parameter", ErrMalformedHash)
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, 0, 0, 0, fmt.Errorf("%w: undecodable salt", ErrMalformedHash)
	}

	key, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, 0, 0, 0, fmt.Errorf("%w: undecodable key", ErrMalformedHash)
	}

	if len(salt) == 0 || len(key) == 0 {
		return nil, nil, 0, 0, 0, fmt.Errorf("%w: empty salt or key", ErrMalformedHash)
	}

	return salt, key, memory, iterations, parallelism, nil
}
