package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallybook/tallybook/internal/transport/httpapi/middleware"
)

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := middleware.NewJWTService("0123456789abcdef0123456789abcdef")
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, "bookkeeper@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "bookkeeper@example.com", claims.Email)
	assert.Equal(t, "tallybook", claims.Issuer)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	svc := middleware.NewJWTService("0123456789abcdef0123456789abcdef")
	other := middleware.NewJWTService("ffffffffffffffffffffffffffffffff")

	token, err := svc.GenerateToken(uuid.New(), "bookkeeper@example.com")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWT_Middleware(t *testing.T) {
	svc := middleware.NewJWTService("0123456789abcdef0123456789abcdef")
	userID := uuid.New()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok := middleware.GetUserIDFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, userID, got)
		w.WriteHeader(http.StatusNoContent)
	})
	protected := middleware.JWT(svc)(next)

	t.Run("valid token", func(t *testing.T) {
		token, err := svc.GenerateToken(userID, "bookkeeper@example.com")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Token abc")
		rec := httptest.NewRecorder()

		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
