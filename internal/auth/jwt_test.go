package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestAccessToken_RoundTrip(t *testing.T) {
	manager := NewJWTManager(testSecret, time.Minute, time.Hour)

	token, err := manager.GenerateAccessJWT("user-1")
	require.NoError(t, err)

	userID, err := manager.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestAccessToken_Expired(t *testing.T) {
	manager := NewJWTManager(testSecret, -time.Minute, time.Hour)

	token, err := manager.GenerateAccessJWT("user-1")
	require.NoError(t, err)

	_, err = manager.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrExpiredJWTToken)
}

func TestAccessToken_WrongSecret(t *testing.T) {
	token, err := NewJWTManager(testSecret, time.Minute, time.Hour).GenerateAccessJWT("user-1")
	require.NoError(t, err)

	_, err = NewJWTManager("other-secret", time.Minute, time.Hour).ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidJWTToken)
}

func TestRefreshToken_BoundToHashToken(t *testing.T) {
	manager := NewJWTManager(testSecret, time.Minute, time.Hour)

	token, err := manager.GenerateRefreshJWT("user-1", "hash-a")
	require.NoError(t, err)

	userID, err := manager.ExtractUserIDFromRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	assert.NoError(t, manager.ValidateRefreshToken(token, "hash-a"))
	assert.ErrorIs(t, manager.ValidateRefreshToken(token, "hash-b"), ErrInvalidJWTRefreshToken)
}

func TestRefreshToken_NotAcceptedAsGarbage(t *testing.T) {
	manager := NewJWTManager(testSecret, time.Minute, time.Hour)

	_, err := manager.ExtractUserIDFromRefreshToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidJWTToken)
}
