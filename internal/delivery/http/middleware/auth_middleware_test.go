package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"patient-record-service/config"
	"patient-record-service/internal/delivery/http/middleware"
	"patient-record-service/pkg/jwt"

	"github.com/stretchr/testify/require"
)

func newAuthFixture() (*middleware.AuthMiddleware, *jwt.JWTService) {
	svc := jwt.NewJWTService(config.JWTConfig{Secret: "test-secret"})
	return middleware.NewAuthMiddleware(svc), svc
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	auth, _ := newAuthFixture()

	handler := auth.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a token")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/patients", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	auth, _ := newAuthFixture()

	handler := auth.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a token")
	}))

	for _, header := range []string{"Basic abc123", "Bearer", "Bearer a b"} {
		req := httptest.NewRequest(http.MethodPost, "/api/patients", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	auth, _ := newAuthFixture()

	handler := auth.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with an invalid token")
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/patients", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_ValidTokenAttachesClaims(t *testing.T) {
	auth, svc := newAuthFixture()

	token, err := svc.GenerateToken("user-1", "jdoe", "jdoe@example.com", time.Hour)
	require.NoError(t, err)

	called := false
	handler := auth.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true

		subject, ok := middleware.GetSubjectFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, "user-1", subject)

		claims, ok := middleware.GetClaimsFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, "jdoe", claims.Username)

		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/patients", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.True(t, called)
	require.Equal(t, http.StatusOK, rec.Code)
}
