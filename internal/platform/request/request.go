// Copyright (c) 2026 Rerec. All rights reserved.

/*
Package request provides utilities for extracting data from HTTP requests.

It covers the two extraction patterns every handler shares: body decoding
with a uniform error, and consuming the identity the auth gate resolved.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/ladekjaer/rerec/internal/platform/apperr"
	"github.com/ladekjaer/rerec/internal/platform/ctxutil"
	"github.com/ladekjaer/rerec/internal/platform/sec"
	"github.com/ladekjaer/rerec/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
RequiredIdentity ensures the request is authenticated and returns the identity.

The auth gate resolves the session token once per request; handlers consume
its result here rather than re-querying credentials.

Returns:
  - *sec.Identity: The resolved session identity
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredIdentity(request *http.Request) (*sec.Identity, error) {

	// Get the resolved identity
	identity := ctxutil.GetIdentity(request.Context())

	// If the session could not be resolved, return an error
	if identity == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	return identity, nil
}
