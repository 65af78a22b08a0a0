package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	m := NewManager("test-secret")
	userID := uuid.New()

	pair, err := m.GenerateTokenPair(userID, "user@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.True(t, pair.ExpiresAt.After(time.Now()))

	claims, err := m.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	m := NewManager("test-secret")
	pair, err := m.GenerateTokenPair(uuid.New(), "user@example.com")
	require.NoError(t, err)

	other := NewManager("different-secret")
	_, err = other.ValidateToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	m := NewManager("test-secret")
	_, err := m.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Expired(t *testing.T) {
	m := NewManager("test-secret")
	m.accessDuration = -time.Minute

	pair, err := m.GenerateTokenPair(uuid.New(), "user@example.com")
	require.NoError(t, err)

	_, err = m.ValidateToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestRefreshTokens(t *testing.T) {
	m := NewManager("test-secret")
	userID := uuid.New()

	pair, err := m.GenerateTokenPair(userID, "user@example.com")
	require.NoError(t, err)

	refreshed, err := m.RefreshTokens(pair.RefreshToken)
	require.NoError(t, err)

	claims, err := m.ValidateToken(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
}

func TestRefreshTokens_InvalidToken(t *testing.T) {
	m := NewManager("test-secret")
	_, err := m.RefreshTokens("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGetAccessDuration(t *testing.T) {
	m := NewManager("test-secret")
	assert.Equal(t, int64(900), m.GetAccessDuration())
}
