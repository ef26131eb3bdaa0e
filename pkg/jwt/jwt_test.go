package jwt_test

import (
	"testing"
	"time"

	"patient-record-service/config"
	"patient-record-service/pkg/jwt"

	"github.com/stretchr/testify/require"
)

func TestValidateToken_RoundTrip(t *testing.T) {
	svc := jwt.NewJWTService(config.JWTConfig{Secret: "test-secret"})

	token, err := svc.GenerateToken("user-1", "jdoe", "jdoe@example.com", time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, "jdoe", claims.Username)
	require.Equal(t, "jdoe@example.com", claims.Email)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	issuer := jwt.NewJWTService(config.JWTConfig{Secret: "issuer-secret"})
	verifier := jwt.NewJWTService(config.JWTConfig{Secret: "other-secret"})

	token, err := issuer.GenerateToken("user-1", "jdoe", "", time.Hour)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	require.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := jwt.NewJWTService(config.JWTConfig{Secret: "test-secret"})

	token, err := svc.GenerateToken("user-1", "jdoe", "", -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
}

func TestValidateToken_Malformed(t *testing.T) {
	svc := jwt.NewJWTService(config.JWTConfig{Secret: "test-secret"})

	_, err := svc.ValidateToken("not.a.token")
	require.Error(t, err)
}
