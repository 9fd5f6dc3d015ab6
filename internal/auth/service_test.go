// Copyright (c) 2026 Rerec. All rights reserved.

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ladekjaer/rerec/internal/auth"
	"github.com/ladekjaer/rerec/internal/platform/apperr"
	"github.com/ladekjaer/rerec/internal/platform/sec"
)

// # Test Fakes

// fakeUserRepository is an in-memory UserRepository.
type fakeUserRepository struct {
	users map[string]*auth.User // keyed by username
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*auth.User)}
}

func (repo *fakeUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	user, ok := repo.users[username]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	copied := *user
	return &copied, nil
}

func (repo *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	for _, user := range repo.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	if _, exists := repo.users[user.Username]; exists {
		return apperr.Conflict("Username is already taken")
	}
	copied := *user
	repo.users[user.Username] = &copied
	return nil
}

// fakeSessionRepository is an in-memory SessionRepository.
type fakeSessionRepository struct {
	bindings map[string]*auth.User
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{bindings: make(map[string]*auth.User)}
}

func (repo *fakeSessionRepository) Set(_ context.Context, token string, user *auth.User, _ time.Duration) error {
	copied := *user
	repo.bindings[token] = &copied
	return nil
}

func (repo *fakeSessionRepository) Get(_ context.Context, token string) (*auth.User, error) {
	user, ok := repo.bindings[token]
	if !ok {
		return nil, apperr.NotFound("Session")
	}
	copied := *user
	return &copied, nil
}

func (repo *fakeSessionRepository) Delete(_ context.Context, token string) error {
	delete(repo.bindings, token)
	return nil
}

func newTestService() (*auth.Service, *fakeUserRepository, *fakeSessionRepository) {
	userRepo := newFakeUserRepository()
	sessionRepo := newFakeSessionRepository()
	service := auth.NewService(userRepo, sessionRepo, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return service, userRepo, sessionRepo
}

// # Registration

/*
TestRegister_HashesPassword verifies that registration stores a salted hash,
never the plain text, and that the system assigns the ID.
*/
func TestRegister_HashesPassword(t *testing.T) {
	service, userRepo, _ := newTestService()

	user, err := service.Register(context.Background(), auth.RegisterInput{
		Username:             "probe-operator",
		Password:             "securepassword123",
		PasswordConfirmation: "securepassword123",
	})
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "probe-operator", user.Username)

	stored := userRepo.users["probe-operator"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "securepassword123", stored.PasswordHash)

	ok, err := sec.VerifyPassword(stored.PasswordHash, "securepassword123")
	require.NoError(t, err)
	assert.True(t, ok)
}

/*
TestRegister_ConfirmationMismatch verifies that a mismatched confirmation is
rejected before any account is created.
*/
func TestRegister_ConfirmationMismatch(t *testing.T) {
	service, userRepo, _ := newTestService()

	user, err := service.Register(context.Background(), auth.RegisterInput{
		Username:             "probe-operator",
		Password:             "securepassword123",
		PasswordConfirmation: "different-password",
	})

	require.Error(t, err)
	assert.Nil(t, user)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)

	// The directory must be untouched.
	assert.Empty(t, userRepo.users)
}

/*
TestRegister_DuplicateUsername verifies the uniqueness conflict mapping.
*/
func TestRegister_DuplicateUsername(t *testing.T) {
	service, _, _ := newTestService()

	input := auth.RegisterInput{
		Username:             "probe-operator",
		Password:             "securepassword123",
		PasswordConfirmation: "securepassword123",
	}

	_, err := service.Register(context.Background(), input)
	require.NoError(t, err)

	_, err = service.Register(context.Background(), input)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
}

// # Login

/*
TestLogin_UniformFailure verifies the enumeration defense: an unknown
username and a wrong password produce observably identical outcomes.
*/
func TestLogin_UniformFailure(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Username:             "probe-operator",
		Password:             "securepassword123",
		PasswordConfirmation: "securepassword123",
	})
	require.NoError(t, err)

	_, unknownUserErr := service.Login(context.Background(), auth.Credentials{
		Username: "no-such-user",
		Password: "securepassword123",
	})
	_, wrongPasswordErr := service.Login(context.Background(), auth.Credentials{
		Username: "probe-operator",
		Password: "wrong-password",
	})

	require.Error(t, unknownUserErr)
	require.Error(t, wrongPasswordErr)

	first := apperr.As(unknownUserErr)
	second := apperr.As(wrongPasswordErr)
	require.NotNil(t, first)
	require.NotNil(t, second)

	assert.Equal(t, first.Code, second.Code)
	assert.Equal(t, first.Message, second.Message)
	assert.Equal(t, first.HTTPStatus, second.HTTPStatus)
}

/*
TestLogin_BindsSession verifies the Unbound -> Bound transition and that the
token resolves to the bound identity.
*/
func TestLogin_BindsSession(t *testing.T) {
	service, _, sessionRepo := newTestService()

	registered, err := service.Register(context.Background(), auth.RegisterInput{
		Username:             "probe-operator",
		Password:             "securepassword123",
		PasswordConfirmation: "securepassword123",
	})
	require.NoError(t, err)

	session, err := service.Login(context.Background(), auth.Credentials{
		Username: "probe-operator",
		Password: "securepassword123",
	})
	require.NoError(t, err)
	require.NotNil(t, session)

	assert.NotEmpty(t, session.Token)
	assert.Equal(t, registered.ID, session.User.ID)
	require.Contains(t, sessionRepo.bindings, session.Token)

	identity, err := service.Resolve(context.Background(), session.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, identity.UserID)
	assert.Equal(t, "probe-operator", identity.Username)
}

/*
TestLogin_MalformedStoredHash verifies that a corrupted hash record yields
the same uniform failure as bad credentials, never an internal leak.
*/
func TestLogin_MalformedStoredHash(t *testing.T) {
	service, userRepo, _ := newTestService()

	userRepo.users["corrupted"] = &auth.User{
		ID:           "user-1",
		Username:     "corrupted",
		PasswordHash: "not-a-valid-hash-record",
	}

	_, err := service.Login(context.Background(), auth.Credentials{
		Username: "corrupted",
		Password: "whatever",
	})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UNAUTHORIZED", ae.Code)
	assert.Equal(t, "Invalid username or password", ae.Message)
}

// # Logout & Resolution

/*
TestLogout_Idempotent verifies that logout succeeds on bound, unbound, and
already-cleared tokens alike.
*/
func TestLogout_Idempotent(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Username:             "probe-operator",
		Password:             "securepassword123",
		PasswordConfirmation: "securepassword123",
	})
	require.NoError(t, err)

	session, err := service.Login(context.Background(), auth.Credentials{
		Username: "probe-operator",
		Password: "securepassword123",
	})
	require.NoError(t, err)

	// Bound -> cleared
	assert.NoError(t, service.Logout(context.Background(), session.Token))
	// Already cleared
	assert.NoError(t, service.Logout(context.Background(), session.Token))
	// Never bound
	assert.NoError(t, service.Logout(context.Background(), "never-seen-token"))
	// No token at all
	assert.NoError(t, service.Logout(context.Background(), ""))

	// After logout the token must no longer resolve.
	_, err = service.Resolve(context.Background(), session.Token)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}

/*
TestResolve_UnresolvableToken verifies the gate treats missing and unknown
tokens identically.
*/
func TestResolve_UnresolvableToken(t *testing.T) {
	service, _, _ := newTestService()

	_, missingErr := service.Resolve(context.Background(), "")
	_, unknownErr := service.Resolve(context.Background(), "deadbeef")

	require.Error(t, missingErr)
	require.Error(t, unknownErr)
	assert.Equal(t, apperr.As(missingErr).Code, apperr.As(unknownErr).Code)
	assert.Equal(t, apperr.As(missingErr).Message, apperr.As(unknownErr).Message)
}

/*
TestResolve_SnapshotSemantics verifies that the bound identity is a copy
taken at bind time: later directory changes do not alter it.
*/
func TestResolve_SnapshotSemantics(t *testing.T) {
	service, userRepo, _ := newTestService()

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Username:             "probe-operator",
		Password:             "securepassword123",
		PasswordConfirmation: "securepassword123",
	})
	require.NoError(t, err)

	session, err := service.Login(context.Background(), auth.Credentials{
		Username: "probe-operator",
		Password: "securepassword123",
	})
	require.NoError(t, err)

	// Out-of-band change to the underlying account record.
	userRepo.users["probe-operator"].Username = "renamed-operator"

	identity, err := service.Resolve(context.Background(), session.Token)
	require.NoError(t, err)
	assert.Equal(t, "probe-operator", identity.Username)
}
