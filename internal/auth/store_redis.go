// Copyright (c) 2026 Rerec. All rights reserved.

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ladekjaer/rerec/internal/platform/apperr"
	"github.com/ladekjaer/rerec/internal/platform/constants"
)

// RedisSessionRepository implements SessionRepository using Redis.
//
// Each binding lives under one key with a TTL, so session expiry needs no
// application-side sweeper. Redis applies commands for a single key in
// arrival order, which gives a token's login/logout transitions their
// request-order guarantee without extra locking in the core.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewSessionRepository creates a new Redis-backed SessionRepository.
func NewSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

// sessionSnapshot is the stored form of a bound identity.
//
// It is a full copy of the User taken at bind time: later changes to the
// account row do not retroactively alter an already-bound session.
type sessionSnapshot struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

/*
Set binds a session token to an identity snapshot with a TTL.

Parameters:
  - context: context.Context
  - token: string
  - user: *User
  - ttl: time.Duration

Returns:
  - error: Marshalling or execution errors
*/
func (repository *RedisSessionRepository) Set(context context.Context, token string, user *User, ttl time.Duration) error {

	// Use constants for key prefix
	key := constants.RedisPrefixSession + token

	// Snapshot the identity by value
	payload, err := json.Marshal(sessionSnapshot{
		ID:           user.ID,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("redis_session_marshal_failed: %w", err)
	}

	// Set the binding with TTL
	if err := repository.client.Set(context, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_set_failed: %w", err)
	}

	// Return nil on success
	return nil
}

/*
Get resolves a token into the bound identity snapshot.

Description: Returns apperr.NotFound if the token is absent or expired —
the two cases are indistinguishable by design.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - *User: Snapshot captured at bind time
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisSessionRepository) Get(context context.Context, token string) (*User, error) {

	// Use constants for key prefix
	key := constants.RedisPrefixSession + token

	// Get the binding from Redis
	payload, err := repository.client.Get(context, key).Bytes()

	// Handle errors
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Session")
		}
		return nil, fmt.Errorf("redis_session_get_failed: %w", err)
	}

	// Decode the stored snapshot
	snapshot := sessionSnapshot{}
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, fmt.Errorf("redis_session_unmarshal_failed: %w", err)
	}

	return &User{
		ID:           snapshot.ID,
		Username:     snapshot.Username,
		PasswordHash: snapshot.PasswordHash,
		CreatedAt:    snapshot.CreatedAt,
	}, nil
}

/*
Delete clears the binding for a token.

Description: Redis DEL on a missing key is a no-op, so clearing an
already-unbound token succeeds (idempotent).

Parameters:
  - context: context.Context
  - token: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisSessionRepository) Delete(context context.Context, token string) error {

	// Use constants for key prefix
	key := constants.RedisPrefixSession + token

	// Delete the binding from Redis
	if err := repository.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}

	// Return nil on success
	return nil
}
