package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vfxhub_backend/pkg/apperrors"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("secret", 60)

	token, err := m.GenerateToken("user-1", "artist")
	require.NoError(t, err)

	claims, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "artist", claims.Role)
}

func TestJWTManager_WrongSecret(t *testing.T) {
	m := NewJWTManager("secret", 60)
	other := NewJWTManager("other-secret", 60)

	token, err := m.GenerateToken("user-1", "artist")
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestJWTManager_Expired(t *testing.T) {
	m := &JWTManager{secret: []byte("secret"), ttl: -time.Minute}

	token, err := m.GenerateToken("user-1", "artist")
	require.NoError(t, err)

	_, err = m.ParseToken(token)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeTokenExpired, appErr.Code)
}

func TestPassword_HashAndCheck(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "correct-horse"))
	assert.False(t, CheckPassword(hash, "wrong"))

	_, err = HashPassword("short")
	assert.ErrorIs(t, err, apperrors.ErrWeakPassword)
}
