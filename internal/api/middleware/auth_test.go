package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WheelShopService/internal/auth"
	"github.com/m04kA/SMC-WheelShopService/internal/domain"
)

func authedRequest(t *testing.T, tokens *auth.TokenManager, userID int64, role domain.UserRole) *http.Request {
	t.Helper()

	token, _, err := tokens.Generate(userID, role)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestAuth(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", 60)

	var gotID int64
	var gotRole domain.UserRole
	handler := Auth(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := CallerID(r.Context())
		require.True(t, ok)
		gotID = id
		role, ok := CallerRole(r.Context())
		require.True(t, ok)
		gotRole = role
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("valid token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, authedRequest(t, tokens, 42, domain.RoleStaff))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(42), gotID)
		assert.Equal(t, domain.RoleStaff, gotRole)
	})

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bookings", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("not a bearer token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("forged token", func(t *testing.T) {
		other := auth.NewTokenManager("other-secret", 60)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, authedRequest(t, other, 42, domain.RoleAdmin))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireStaff(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", 60)
	handler := Auth(tokens)(RequireStaff(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	tests := []struct {
		role domain.UserRole
		want int
	}{
		{domain.RoleCustomer, http.StatusForbidden},
		{domain.RoleStaff, http.StatusOK},
		{domain.RoleAdmin, http.StatusOK},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, authedRequest(t, tokens, 1, tt.role))
		assert.Equal(t, tt.want, rec.Code, "role %s", tt.role)
	}
}

func TestRequireAdmin(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", 60)
	handler := Auth(tokens)(RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	tests := []struct {
		role domain.UserRole
		want int
	}{
		{domain.RoleCustomer, http.StatusForbidden},
		{domain.RoleStaff, http.StatusForbidden},
		{domain.RoleAdmin, http.StatusOK},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, authedRequest(t, tokens, 1, tt.role))
		assert.Equal(t, tt.want, rec.Code, "role %s", tt.role)
	}
}

// Без Auth в цепочке ролевой guard не пропускает никого
func TestRequireStaff_NoClaims(t *testing.T) {
	handler := RequireStaff(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bookings", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
