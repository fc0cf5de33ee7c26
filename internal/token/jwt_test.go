package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryancham715/sav4us/internal/model"
)

func newTestManager(secret string) model.TokenManager {
	return NewJWT(secret, 15*time.Minute, 30*24*time.Hour)
}

func TestJWT_AccessTokenRoundtrip(t *testing.T) {
	manager := newTestManager("test-secret")
	userID := uuid.New()

	token, err := manager.GenerateAccessToken(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := manager.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestJWT_RefreshTokenRoundtrip(t *testing.T) {
	manager := newTestManager("test-secret")
	userID := uuid.New()

	token, jti, err := manager.GenerateRefreshToken(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, jti)

	parsedID, parsedJTI, err := manager.ParseRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, parsedID)
	assert.Equal(t, jti, parsedJTI)
}

func TestJWT_RefreshJTIsAreUnique(t *testing.T) {
	manager := newTestManager("test-secret")
	userID := uuid.New()

	_, jti1, err := manager.GenerateRefreshToken(userID)
	require.NoError(t, err)
	_, jti2, err := manager.GenerateRefreshToken(userID)
	require.NoError(t, err)

	assert.NotEqual(t, jti1, jti2)
}

func TestJWT_RejectsWrongTokenType(t *testing.T) {
	manager := newTestManager("test-secret")
	userID := uuid.New()

	access, err := manager.GenerateAccessToken(userID)
	require.NoError(t, err)
	refresh, _, err := manager.GenerateRefreshToken(userID)
	require.NoError(t, err)

	_, err = manager.ParseAccessToken(refresh)
	require.Error(t, err)

	_, _, err = manager.ParseRefreshToken(access)
	require.Error(t, err)
}

func TestJWT_RejectsWrongSecret(t *testing.T) {
	userID := uuid.New()

	token, err := newTestManager("secret-a").GenerateAccessToken(userID)
	require.NoError(t, err)

	_, err = newTestManager("secret-b").ParseAccessToken(token)
	require.Error(t, err)
}

func TestJWT_RefreshTokenTTL(t *testing.T) {
	manager := NewJWT("test-secret", time.Minute, 2*time.Hour)
	assert.Equal(t, 2*time.Hour, manager.RefreshTokenTTL())
}

func TestJWT_RejectsExpiredToken(t *testing.T) {
	userID := uuid.New()

	// A negative TTL produces an already-expired token.
	manager := NewJWT("test-secret", -time.Minute, -time.Minute)

	access, err := manager.GenerateAccessToken(userID)
	require.NoError(t, err)
	_, err = manager.ParseAccessToken(access)
	require.Error(t, err)

	refresh, _, err := manager.GenerateRefreshToken(userID)
	require.NoError(t, err)
	_, _, err = manager.ParseRefreshToken(refresh)
	require.Error(t, err)
}

func TestJWT_RejectsGarbage(t *testing.T) {
	manager := newTestManager("test-secret")

	_, err := manager.ParseAccessToken("not-a-token")
	require.Error(t, err)

	_, _, err = manager.ParseRefreshToken("")
	require.Error(t, err)
}
