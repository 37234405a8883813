package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	t.Parallel()
	first, err := HashPassword("secret")
	require.NoError(t, err)
	second, err := HashPassword("secret")
	require.NoError(t, err)

	assert.NotEqual(t, "secret", first)
	assert.NotEqual(t, first, second, "hashes must be salted")

	cost, err := bcrypt.Cost([]byte(first))
	require.NoError(t, err)
	assert.Equal(t, 10, cost)
}

func TestVerifyPassword(t *testing.T) {
	t.Parallel()
	hash, err := HashPassword("secret")
	require.NoError(t, err)

	assert.True(t, VerifyPassword("secret", hash))
	assert.False(t, VerifyPassword("Secret", hash))
	assert.False(t, VerifyPassword("", hash))
	assert.False(t, VerifyPassword("secret", "not-a-bcrypt-hash"))
}
