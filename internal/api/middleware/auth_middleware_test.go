package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/areejrazzaq/shopping-cart/internal/api/middleware"
	"github.com/areejrazzaq/shopping-cart/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testJWTKey = []byte("test-signing-key")

func signToken(t *testing.T, userID uuid.UUID, expiresAt time.Time) string {
	t.Helper()

	claims := &models.Claims{
		UserID: userID,
		Email:  "test@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testJWTKey)
	require.NoError(t, err)

	return token
}

func TestAuthenticate(t *testing.T) {
	authMiddleware := middleware.NewAuthMiddleware(testJWTKey)

	t.Run("Success - Valid Token", func(t *testing.T) {
		// Arrange
		userID := uuid.New()

		var gotClaims *models.Claims

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotClaims, _ = r.Context().Value(middleware.UserContextKey).(*models.Claims)
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, userID, time.Now().Add(time.Hour)))
		rec := httptest.NewRecorder()

		// Act
		authMiddleware.Authenticate(next).ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, gotClaims, "Claims should be injected into the request context")
		assert.Equal(t, userID, gotClaims.UserID)
	})

	t.Run("Failure - Missing Header", func(t *testing.T) {
		// Arrange
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("Handler must not run without a token")
		})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
		rec := httptest.NewRecorder()

		// Act
		authMiddleware.Authenticate(next).ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Failure - Malformed Header", func(t *testing.T) {
		// Arrange
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("Handler must not run with a malformed header")
		})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
		req.Header.Set("Authorization", "Token abcdef")
		rec := httptest.NewRecorder()

		// Act
		authMiddleware.Authenticate(next).ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Failure - Expired Token", func(t *testing.T) {
		// Arrange
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("Handler must not run with an expired token")
		})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, uuid.New(), time.Now().Add(-time.Hour)))
		rec := httptest.NewRecorder()

		// Act
		authMiddleware.Authenticate(next).ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Failure - Wrong Signing Key", func(t *testing.T) {
		// Arrange
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("Handler must not run with a forged token")
		})

		claims := &models.Claims{UserID: uuid.New(), RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-key"))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
		req.Header.Set("Authorization", "Bearer "+forged)
		rec := httptest.NewRecorder()

		// Act
		authMiddleware.Authenticate(next).ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
