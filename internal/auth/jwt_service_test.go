package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, tokenID, err := svc.GenerateToken("user-1", "a@example.com", "ADMIN")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, tokenID)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, tokenID, claims.ID)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	token, _, err := NewJWTService("secret-a").GenerateToken("user-1", "a@example.com", "USER")
	require.NoError(t, err)

	_, err = NewJWTService("secret-b").ValidateToken(token)
	assert.Error(t, err)
}

func TestPeekRole(t *testing.T) {
	token, _, err := NewJWTService("test-secret").GenerateToken("user-1", "a@example.com", "ADMIN")
	require.NoError(t, err)

	assert.Equal(t, "ADMIN", PeekRole(token))
	assert.Empty(t, PeekRole("not-a-jwt"))
}
