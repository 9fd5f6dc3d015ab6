// Copyright (c) 2026 Rerec. All rights reserved.

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ladekjaer/rerec/internal/platform/apperr"
	"github.com/ladekjaer/rerec/internal/platform/sec"
	"github.com/ladekjaer/rerec/pkg/uuid"
)

// uniformLoginFailure is the single outcome for every failed login.
//
// A caller must not be able to tell an unknown username from a wrong
// password from this outcome alone (username enumeration defense).
func uniformLoginFailure() *apperr.AppError {
	return apperr.Unauthorized("Invalid username or password")
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed before merging.
type Service struct {
	userRepository    UserRepository
	sessionRepository SessionRepository
	logger            *slog.Logger
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(userRepo UserRepository, sessionRepo SessionRepository, logger *slog.Logger) *Service {
	return &Service{
		userRepository:    userRepo,
		sessionRepository: sessionRepo,
		logger:            logger,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username             string
	Password             string
	PasswordConfirmation string
}

/*
Register validates, hashes, and persists a brand new user account.

Description: The confirmation check runs before any hashing or directory
access — a mismatched confirmation never touches the credential store or
the database.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - error: Validation failure, Conflict (if the username exists), or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {

	// Reject a mismatched confirmation before touching anything else.
	if input.Password != input.PasswordConfirmation {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   FieldPasswordConfirmation,
			Message: "Must match password",
		})
	}

	// Prevent storing plain-text passwords. Argon2id with a fresh salt:
	// registering the same password twice never produces the same hash.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuid.New(),
		Username:     input.Username,
		PasswordHash: hashedPassword,
		CreatedAt:    time.Now().UTC(),
	}

	// Persist the user. The unique index maps a duplicate username to a
	// client-safe Conflict inside the repository; no pre-check race.
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

// # Authentication Flow

// LoginSession represents a successfully established user session.
type LoginSession struct {
	Token     string
	ExpiresAt time.Time
	User      *User
}

/*
Login validates user credentials and binds a new session.

Description: Verifies identity with a constant-time password comparison,
generates an opaque session token, and binds a snapshot of the user to it.

Unknown username, wrong password, and a failed directory lookup all yield
the same uniform outcome. A malformed stored hash is an internal fault: it
is logged server-side and still surfaced as the uniform failure, so the
response shape leaks nothing.

Parameters:
  - context: context.Context
  - credentials: Credentials

Returns:
  - *LoginSession: Transport-ready session token and bound user
  - error: Uniform apperr.Unauthorized, or internal failures
*/
func (service *Service) Login(context context.Context, credentials Credentials) (*LoginSession, error) {
	user, err := service.userRepository.FindByUsername(context, credentials.Username)

	// If (err != nil) the user does not exist. Generic outcome to prevent enumeration.
	if err != nil {
		return nil, uniformLoginFailure()
	}

	// Verify the password against the stored argon2id hash.
	matches, err := sec.VerifyPassword(user.PasswordHash, credentials.Password)
	if err != nil {
		// Corrupted stored hash. Never shown verbatim to the caller.
		service.logger.ErrorContext(context, "auth_stored_hash_malformed",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
		return nil, uniformLoginFailure()
	}
	if !matches {
		return nil, uniformLoginFailure()
	}

	// Generate the opaque session token.
	token, err := sec.GenerateSecureToken(SessionTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_session_token_failed: %w", err)
	}

	// Bind token -> identity snapshot in the session store.
	if err := service.sessionRepository.Set(context, token, user, SessionTTL); err != nil {
		return nil, fmt.Errorf("auth_service_session_bind_failed: %w", err)
	}

	return &LoginSession{
		Token:     token,
		ExpiresAt: time.Now().Add(SessionTTL),
		User:      user,
	}, nil
}

/*
Logout unconditionally clears the binding for a session token.

Description: Idempotent — clearing an unknown or already-cleared token is
a success from the caller's point of view.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - error: Store connectivity failures only
*/
func (service *Service) Logout(context context.Context, token string) error {

	// Nothing to clear for an absent token.
	if token == "" {
		return nil
	}

	if err := service.sessionRepository.Delete(context, token); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	return nil
}

// # Auth Gate

/*
Resolve turns a session token into a trusted identity, or rejects.

Description: The request-time authorization gate. "No token", "unknown
token", and "expired token" are all the same outcome. The returned identity
is the snapshot captured at bind time and carries only public fields.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - *sec.Identity: Resolved identity for downstream handlers
  - error: apperr.Unauthorized when no identity can be resolved
*/
func (service *Service) Resolve(context context.Context, token string) (*sec.Identity, error) {
	if token == "" {
		return nil, apperr.Unauthorized("Authentication required")
	}

	user, err := service.sessionRepository.Get(context, token)
	if err != nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	return &sec.Identity{
		UserID:   user.ID,
		Username: user.Username,
	}, nil
}
