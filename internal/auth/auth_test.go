package auth_test

import (
	"strings"
	"testing"
	"time"

	"igames/internal/auth"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_jwt_secret"

func TestHashPassword(t *testing.T) {
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	assert.NotEqual(t, "password123", hash)
	assert.True(t, strings.HasPrefix(hash, "$2a$08$"), "expected bcrypt cost 8, got %s", hash)
	assert.True(t, auth.VerifyPassword("password123", hash))
	assert.False(t, auth.VerifyPassword("wrongpassword", hash))
	assert.False(t, auth.VerifyPassword("password123", "not-a-hash"))
}

func TestTokens_RoundTrip(t *testing.T) {
	tokens := auth.NewTokens(testSecret, 0)

	for _, id := range []string{"user-123", "5f8d0d55b54764421b7156c3", "8a3c6f1e-2b1d-4c4a-9f0e-1d2c3b4a5f60"} {
		token, err := tokens.Issue(id)
		require.NoError(t, err)

		got, err := tokens.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}
}

func TestTokens_ExpiryIsSevenDays(t *testing.T) {
	tokens := auth.NewTokens(testSecret, 0)
	token, err := tokens.Issue("user-123")
	require.NoError(t, err)

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) { return []byte(testSecret), nil })
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)

	lifetime := int64(claims["exp"].(float64)) - int64(claims["iat"].(float64))
	assert.Equal(t, int64((7 * 24 * time.Hour).Seconds()), lifetime)
}

func TestTokens_Verify_Rejects(t *testing.T) {
	tokens := auth.NewTokens(testSecret, time.Hour)

	// Malformed
	_, err := tokens.Verify("invalid.token.string")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	// Wrong secret
	other, _ := auth.NewTokens("other_secret", time.Hour).Issue("user-123")
	_, err = tokens.Verify(other)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	// Expired
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  "user-123",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	expiredString, _ := expired.SignedString([]byte(testSecret))
	_, err = tokens.Verify(expiredString)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	// Missing subject
	anonymous := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	anonymousString, _ := anonymous.SignedString([]byte(testSecret))
	_, err = tokens.Verify(anonymousString)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
