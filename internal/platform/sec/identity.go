// Copyright (c) 2026 Rerec. All rights reserved.

package sec

// Identity is the resolved, trusted identity of an authenticated request.
//
// # Why a separate type?
//
// The auth gate resolves a session token once per request and injects an
// Identity into the request context. Downstream handlers consume this value
// instead of re-querying credentials; it carries only the public fields a
// handler may need, never the password hash.
//
// The Identity is a snapshot taken when the session was bound. Later changes
// to the underlying account do not retroactively alter it.
type Identity struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}
