// Copyright (c) 2026 Rerec. All rights reserved.

package auth

import "time"

// # Authentication Constraints

const (
	// SessionTTL is the duration a session binding remains valid.
	//
	// Expiry is enforced by the session store's own TTL; the core treats an
	// expired token identically to an unknown one.
	SessionTTL = 24 * time.Hour

	// SessionTokenLength is the byte length of the random opaque session token.
	SessionTokenLength = 32

	// MinUsernameLength is the shortest accepted username.
	MinUsernameLength = 3

	// MaxUsernameLength is the longest accepted username.
	MaxUsernameLength = 30

	// MinPasswordLength is the shortest accepted password.
	MinPasswordLength = 8
)
