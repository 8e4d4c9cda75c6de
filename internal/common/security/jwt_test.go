package security

import (
	"testing"
	"time"

	"campdir/internal/platform/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initTestJWT(t *testing.T) {
	t.Helper()
	config.AppConfig = &config.Config{
		JWTKey: []byte("test-secret"),
		JWTExp: time.Hour,
	}
	InitJWT()
}

func TestGenerateAndDecodeToken(t *testing.T) {
	initTestJWT(t)

	tokenString, err := GenerateToken("user-123", "publisher")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	token, err := TokenAuth.Decode(tokenString)
	require.NoError(t, err)

	userID, ok := token.Get("user_id")
	require.True(t, ok)
	assert.Equal(t, "user-123", userID)

	role, ok := token.Get("role")
	require.True(t, ok)
	assert.Equal(t, "publisher", role)

	assert.WithinDuration(t, time.Now().Add(time.Hour), token.Expiration(), time.Minute)
}

func TestClaimHelpers(t *testing.T) {
	claims := map[string]interface{}{"user_id": "u1", "role": "admin"}

	userID, err := GetUserIDFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)

	role, err := GetUserRoleFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, "admin", role)

	_, err = GetUserIDFromClaims(map[string]interface{}{})
	assert.Error(t, err)
	_, err = GetUserRoleFromClaims(map[string]interface{}{"role": 7})
	assert.Error(t, err)
}
