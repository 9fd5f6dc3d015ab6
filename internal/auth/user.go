// Copyright (c) 2026 Rerec. All rights reserved.

/*
Package auth implements the user identity and session management layer.

It defines the core domain entities (User, Credentials) and logic for
registration, authentication, and session resolution.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no
transport dependencies and encapsulate all business rules related to user
identity.
*/
package auth

import (
	"time"
)

// # Domain Entities

// User represents a registered account.
//
// The ID is assigned by the system at creation time, never by the caller.
// Username is unique and case-sensitive. The password hash never leaves
// the server: it is excluded from JSON and from every API payload.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	CreatedAt    time.Time `json:"created_at"`
}

// Credentials is an ephemeral username/plain-text-password pair.
//
// It is constructed only from an inbound request, lives for the duration of
// that request, and is never persisted or logged.
type Credentials struct {
	Username string
	Password string
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername             = "username"
	FieldPassword             = "password"
	FieldPasswordConfirmation = "password_confirmation"
	FieldMessage              = "message"
	FieldUser                 = "user"
)
