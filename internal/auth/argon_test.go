package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashToken(t *testing.T) {
	t.Run("produces encoded argon2id hash", func(t *testing.T) {
		hash, err := HashToken("correct horse battery staple")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(hash, "$argon2id$"))
	})

	t.Run("salts are fresh per call", func(t *testing.T) {
		first, err := HashToken("same-token-here")
		require.NoError(t, err)
		second, err := HashToken("same-token-here")
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})

	t.Run("rejects short tokens", func(t *testing.T) {
		_, err := HashToken("short")
		assert.Error(t, err)
	})

	t.Run("rejects oversized tokens", func(t *testing.T) {
		_, err := HashToken(strings.Repeat("x", maxTokenLength+1))
		assert.Error(t, err)
	})
}

func TestVerifyToken(t *testing.T) {
	hash, err := HashToken("correct horse battery staple")
	require.NoError(t, err)

	t.Run("matching token verifies", func(t *testing.T) {
		assert.True(t, VerifyToken(hash, "correct horse battery staple"))
	})

	t.Run("wrong token fails", func(t *testing.T) {
		assert.False(t, VerifyToken(hash, "incorrect horse battery staple"))
	})

	t.Run("oversized token fails", func(t *testing.T) {
		assert.False(t, VerifyToken(hash, strings.Repeat("x", maxTokenLength+1)))
	})

	t.Run("malformed stored hash fails closed", func(t *testing.T) {
		assert.False(t, VerifyToken("", "correct horse battery staple"))
		assert.False(t, VerifyToken("not-a-hash", "correct horse battery staple"))
		assert.False(t, VerifyToken("$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA", "correct horse battery staple"))
	})
}

func TestDecodeHash(t *testing.T) {
	hash, err := HashToken("correct horse battery staple")
	require.NoError(t, err)

	salt, key, params, err := decodeHash(hash)
	require.NoError(t, err)
	assert.Len(t, salt, argon2SaltLength)
	assert.Len(t, key, int(argon2KeyLength))
	assert.Equal(t, uint32(argon2Memory), params.memory)
	assert.Equal(t, uint32(argon2Iterations), params.iterations)
	assert.Equal(t, uint8(argon2Parallelism), params.parallelism)
}
