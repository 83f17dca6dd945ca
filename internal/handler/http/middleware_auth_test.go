package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicgrid/civicwatch/internal/service"
	"github.com/civicgrid/civicwatch/internal/utils"
	"github.com/civicgrid/civicwatch/models"
)

// ─────────────────────────────────────────────
// getTokenFromAuthHeader
// ─────────────────────────────────────────────

func TestGetTokenFromAuthHeader(t *testing.T) {
	cases := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{"valid bearer", "Bearer abc.def.ghi", "abc.def.ghi", nil},
		{"no scheme", "abc.def.ghi", "", ErrInvalidAuthorizationHeader},
		{"empty token", "Bearer ", "", ErrEmptyToken},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := getTokenFromAuthHeader(tc.header)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// ─────────────────────────────────────────────
// auth middleware
// ─────────────────────────────────────────────

// identityEcho is a terminal handler that records the identity placed in the
// request context by the auth middleware.
type identityEcho struct {
	called bool
	email  string
	role   models.Role
}

func (e *identityEcho) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	e.called = true
	e.email, _ = utils.UserEmailFromContext(r.Context())
	e.role, _ = utils.RoleFromContext(r.Context())
	w.WriteHeader(http.StatusOK)
}

func TestAuth_ValidTokenInjectsIdentity(t *testing.T) {
	h, svcs := newTestHandler(t)
	svcs.AuthService = &mockAuthService{
		parseTokenFn: func(_ context.Context, tokenString string) (models.Token, error) {
			assert.Equal(t, "valid-token", tokenString)
			return models.Token{UserEmail: "alice@city.example", Role: models.RoleCitizen}, nil
		},
	}

	echo := &identityEcho{}
	req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()

	h.auth(echo).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, echo.called)
	assert.Equal(t, "alice@city.example", echo.email)
	assert.Equal(t, models.RoleCitizen, echo.role)
}

func TestAuth_MissingHeader(t *testing.T) {
	h, _ := newTestHandler(t)

	echo := &identityEcho{}
	req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
	rec := httptest.NewRecorder()

	h.auth(echo).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, echo.called)
}

func TestAuth_MalformedHeader(t *testing.T) {
	h, _ := newTestHandler(t)

	echo := &identityEcho{}
	req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
	req.Header.Set("Authorization", "just-a-token")
	rec := httptest.NewRecorder()

	h.auth(echo).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, echo.called)
}

func TestAuth_ExpiredToken(t *testing.T) {
	h, svcs := newTestHandler(t)
	svcs.AuthService = &mockAuthService{
		parseTokenFn: func(_ context.Context, _ string) (models.Token, error) {
			return models.Token{}, service.ErrTokenIsExpired
		},
	}

	echo := &identityEcho{}
	req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
	req.Header.Set("Authorization", "Bearer stale-token")
	rec := httptest.NewRecorder()

	h.auth(echo).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), service.ErrTokenIsExpired.Error())
	assert.False(t, echo.called)
}

// ─────────────────────────────────────────────
// requireRole middleware
// ─────────────────────────────────────────────

func TestRequireRole_MatchingRolePasses(t *testing.T) {
	h, _ := newTestHandler(t)

	echo := &identityEcho{}
	req := httptest.NewRequest(http.MethodGet, "/api/workers", nil)
	req = authedRequest(req, "admin@city.example", models.RoleAdmin)
	rec := httptest.NewRecorder()

	h.requireRole(models.RoleAdmin)(echo).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, echo.called)
}

func TestRequireRole_WrongRoleForbidden(t *testing.T) {
	h, _ := newTestHandler(t)

	echo := &identityEcho{}
	req := httptest.NewRequest(http.MethodGet, "/api/workers", nil)
	req = authedRequest(req, "alice@city.example", models.RoleCitizen)
	rec := httptest.NewRecorder()

	h.requireRole(models.RoleAdmin)(echo).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, echo.called)
}

func TestRequireRole_NoRoleInContextForbidden(t *testing.T) {
	h, _ := newTestHandler(t)

	echo := &identityEcho{}
	req := httptest.NewRequest(http.MethodGet, "/api/workers", nil)
	rec := httptest.NewRecorder()

	h.requireRole(models.RoleAdmin)(echo).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, echo.called)
}
