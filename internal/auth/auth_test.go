package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	service := NewTokenService("test-secret", 1)

	token, err := service.Generate(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := service.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestValidateRejectsBadTokens(t *testing.T) {
	service := NewTokenService("test-secret", 1)

	_, err := service.Validate("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Token signed with a different secret.
	other := NewTokenService("other-secret", 1)
	token, err := other.Generate(42)
	require.NoError(t, err)

	_, err = service.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	service := NewTokenService("test-secret", -1)

	token, err := service.Generate(42)
	require.NoError(t, err)

	_, err = service.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.True(t, CheckPassword("hunter22", hash))
	assert.False(t, CheckPassword("hunter23", hash))
}
