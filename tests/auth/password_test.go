package auth_test

import (
	"testing"

	"github.com/brushline/contractor-api/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := auth.HashPassword("correct horse battery staple", 4)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.NoError(t, auth.VerifyPassword(hash, "correct horse battery staple"))

	err = auth.VerifyPassword(hash, "wrong password")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestHashPasswordOutOfRangeCost(t *testing.T) {
	// Invalid costs fall back to the bcrypt default instead of failing
	hash, err := auth.HashPassword("secret", 99)
	require.NoError(t, err)
	assert.NoError(t, auth.VerifyPassword(hash, "secret"))
}

func TestVerifyPasswordBadHash(t *testing.T) {
	err := auth.VerifyPassword("not-a-bcrypt-hash", "secret")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}
