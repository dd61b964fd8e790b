package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTCodec_Issue(t *testing.T) {
	secret := "test-secret"
	codec := NewJWTCodec(secret)

	token, err := codec.Issue("user-123", "u@example.com", 24*time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Parse and verify claims
	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(*jwtClaims)
	require.True(t, ok)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "u@example.com", claims.Email)
}

func TestJWTCodec_Verify(t *testing.T) {
	codec := NewJWTCodec("test-secret")

	token, err := codec.Issue("user-42", "a@b.com", time.Hour)
	require.NoError(t, err)

	userID, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)
}

func TestJWTCodec_Verify_wrong_secret(t *testing.T) {
	token, err := NewJWTCodec("secret-a").Issue("user-42", "a@b.com", time.Hour)
	require.NoError(t, err)

	_, err = NewJWTCodec("secret-b").Verify(token)
	assert.Error(t, err)
}

func TestJWTCodec_Verify_expired(t *testing.T) {
	codec := NewJWTCodec("test-secret")
	token, err := codec.Issue("user-42", "a@b.com", -time.Minute)
	require.NoError(t, err)

	_, err = codec.Verify(token)
	assert.Error(t, err)
}
