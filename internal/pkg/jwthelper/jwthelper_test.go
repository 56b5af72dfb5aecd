package jwthelper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	signingKey := []byte("test-signing-key")

	token, err := GenerateToken(signingKey, 42, "test-agent/1.0")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(signingKey, token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "test-agent/1.0", claims.UserAgent)
	assert.NotEmpty(t, claims.ID)
}

func TestParseToken_WrongKey(t *testing.T) {
	token, err := GenerateToken([]byte("key-one"), 1, "agent")
	require.NoError(t, err)

	_, err = ParseToken([]byte("key-two"), token)
	assert.Error(t, err)
}

func TestGenerateToken_UniqueJTI(t *testing.T) {
	signingKey := []byte("test-signing-key")

	first, err := GenerateToken(signingKey, 1, "agent")
	require.NoError(t, err)
	second, err := GenerateToken(signingKey, 1, "agent")
	require.NoError(t, err)

	firstClaims, err := ParseToken(signingKey, first)
	require.NoError(t, err)
	secondClaims, err := ParseToken(signingKey, second)
	require.NoError(t, err)

	assert.NotEqual(t, firstClaims.ID, secondClaims.ID)
}
