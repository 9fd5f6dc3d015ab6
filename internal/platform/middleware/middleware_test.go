// Copyright (c) 2026 Rerec. All rights reserved.

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ladekjaer/rerec/internal/platform/constants"
	"github.com/ladekjaer/rerec/internal/platform/middleware"
)

// stubConfig drives the CORS middleware in tests.
type stubConfig struct {
	development  bool
	extraOrigins []string
}

func (c stubConfig) IsDevelopment() bool      { return c.development }
func (c stubConfig) AllowedOrigins() []string { return c.extraOrigins }

func runCORS(cfg stubConfig, origin string) *httptest.ResponseRecorder {
	handler := middleware.CORS(cfg)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusOK)
	}))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	if origin != "" {
		request.Header.Set(constants.HeaderOrigin, origin)
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestCORS_ExtraOrigins verifies that origins from the configured allowlist
are admitted outside development, and unknown origins are not.
*/
func TestCORS_ExtraOrigins(t *testing.T) {
	cfg := stubConfig{
		development:  false,
		extraOrigins: []string{"https://dash.example.com"},
	}

	allowed := runCORS(cfg, "https://dash.example.com")
	assert.Equal(t, "https://dash.example.com", allowed.Header().Get("Access-Control-Allow-Origin"))

	denied := runCORS(cfg, "https://evil.example.com")
	assert.Empty(t, denied.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_PlatformDomain(t *testing.T) {
	cfg := stubConfig{development: false}

	allowed := runCORS(cfg, "https://app.rerec.dev")
	assert.Equal(t, "https://app.rerec.dev", allowed.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_DevelopmentAllowsAll(t *testing.T) {
	cfg := stubConfig{development: true}

	allowed := runCORS(cfg, "http://localhost:3000")
	assert.Equal(t, "http://localhost:3000", allowed.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_NoOriginPassesThrough(t *testing.T) {
	recorder := runCORS(stubConfig{development: false}, "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
}
