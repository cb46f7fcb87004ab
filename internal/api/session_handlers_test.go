package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sutapaslibrary/library-server/internal/auth"
	"github.com/sutapaslibrary/library-server/internal/domain"
)

func TestCreateSession(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/session", map[string]any{"email": "reader@example.com"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	env := decode[auth.Session](t, resp)
	assert.True(t, env.Success)
	assert.Equal(t, 1, env.Version)
	assert.Equal(t, "reader@example.com", env.Data.Identity.Email)
	assert.Equal(t, "reader", env.Data.Identity.Name)
	assert.Equal(t, domain.RoleMember, env.Data.Identity.Role)
	assert.NotEmpty(t, env.Data.Token)
}

func TestCreateSession_AdminRole(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/session", map[string]any{"email": testAdminEmail, "name": "Sutapa"})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, domain.RoleAdmin, decode[auth.Session](t, resp).Data.Identity.Role)

	// The admin comparison is case-sensitive.
	resp = ts.api.Post("/api/v1/session", map[string]any{"email": "SUTAPAJANA353@gmail.com"})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, domain.RoleMember, decode[auth.Session](t, resp).Data.Identity.Role)
}

func TestCreateSession_InvalidEmail(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/session", map[string]any{"email": "not-an-email"})
	require.Equal(t, http.StatusBadRequest, resp.Code)

	env := decode[any](t, resp)
	assert.False(t, env.Success)
	assert.Equal(t, "VALIDATION", env.Code)
}

func TestGetSession(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/session")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = ts.api.Get("/api/v1/session", "Authorization: Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	auth := ts.signIn(t, "reader@example.com", "Reader")
	resp = ts.api.Get("/api/v1/session", auth)
	require.Equal(t, http.StatusOK, resp.Code)

	env := decode[domain.Identity](t, resp)
	assert.Equal(t, "reader@example.com", env.Data.Email)
	assert.Equal(t, "Reader", env.Data.Name)
}

func TestCreateSession_RateLimited(t *testing.T) {
	ts := setupTestServer(t, withRateLimit(0.001, 2))

	for range 2 {
		resp := ts.api.Post("/api/v1/session", map[string]any{"email": "reader@example.com"})
		require.Equal(t, http.StatusOK, resp.Code)
	}

	resp := ts.api.Post("/api/v1/session", map[string]any{"email": "reader@example.com"})
	require.Equal(t, http.StatusTooManyRequests, resp.Code)
	assert.Equal(t, "RATE_LIMITED", decode[any](t, resp).Code)
}
