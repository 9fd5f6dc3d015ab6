// Copyright (c) 2026 Rerec. All rights reserved.

// Package middleware provides the HTTP middleware chain for the Rerec API server.
//
// # Architecture
//
// Middleware intercepts incoming HTTP requests to apply global policies
// before they reach the domain handlers. This includes cross-cutting concerns
// like Logging, session authentication, Rate Limiting, and CORS.
package middleware

import (
	"context"
	"net/http"

	"github.com/ladekjaer/rerec/internal/platform/apperr"
	"github.com/ladekjaer/rerec/internal/platform/constants"
	"github.com/ladekjaer/rerec/internal/platform/ctxutil"
	"github.com/ladekjaer/rerec/internal/platform/respond"
	"github.com/ladekjaer/rerec/internal/platform/sec"
)

// SessionResolver defines the interface needed to resolve session tokens.
//
// # Why an interface?
//
// Defining SessionResolver here decouples the middleware from the `auth`
// service implementation, allowing us to easily inject fakes during unit
// testing.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*sec.Identity, error)
}

// SessionAuth resolves the session cookie into a trusted identity.
//
// # Flow
//  1. Check for the session cookie.
//  2. If absent, the request proceeds as anonymous.
//  3. If present, resolve the opaque token through the session store.
//  4. Inject [*sec.Identity] into the request context for downstream use.
//
// Resolution happens exactly once per request; every protected handler
// consumes the injected identity instead of re-deriving it. An expired or
// unknown token is treated the same as no token at all.
func SessionAuth(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			cookie, err := request.Cookie(constants.SessionCookieName)

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Token Resolution ───────────────────────────────────────────
			identity, err := resolver.Resolve(request.Context(), cookie.Value)
			if err != nil {
				// Unresolvable token == no token. Continue anonymously so
				// public routes still work with a stale cookie attached.
				next.ServeHTTP(writer, request)
				return
			}

			// ── 3. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithIdentity(request.Context(), identity)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth rejects any request whose session did not resolve to an identity.
//
// It must be mounted after [SessionAuth] in the chain.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetIdentity(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
