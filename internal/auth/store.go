// Copyright (c) 2026 Rerec. All rights reserved.

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
//
// The core never retries these operations; failures surface to the caller
// layer as typed errors.
type UserRepository interface {

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string (case-sensitive)

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: apperr.Conflict on a duplicate username, or persistence failures
	*/
	Create(context context.Context, user *User) error
}

// # Session Data Access

// SessionRepository defines the data access contract for the session binder.
//
// A session is an opaque token bound to a snapshot of the User taken at
// login time. The store owns expiry: a token past its TTL simply stops
// resolving, indistinguishable from a token that never existed.
type SessionRepository interface {

	/*
		Set binds a session token to an identity snapshot for a limited duration.

		Parameters:
		  - context: context.Context
		  - token: string (opaque session token)
		  - user: *User (snapshot captured at bind time)
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Set(context context.Context, token string, user *User, ttl time.Duration) error

	/*
		Get resolves a session token into the identity snapshot bound to it.

		Parameters:
		  - context: context.Context
		  - token: string

		Returns:
		  - *User: The snapshot captured when the session was bound
		  - error: apperr.NotFound if the token is unknown or expired
	*/
	Get(context context.Context, token string) (*User, error)

	/*
		Delete unconditionally clears the binding for a token.

		Deleting an unbound token is not an error (idempotent).

		Parameters:
		  - context: context.Context
		  - token: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, token string) error
}
