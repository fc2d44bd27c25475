package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinehall/backend/internal/auth"
)

func TestHashPassword(t *testing.T) {
	t.Run("hashes a password", func(t *testing.T) {
		hash, err := auth.HashPassword("s3cret-enough")
		require.NoError(t, err)
		assert.NotEmpty(t, hash)
		assert.NotEqual(t, "s3cret-enough", hash)
	})

	t.Run("rejects an empty password", func(t *testing.T) {
		hash, err := auth.HashPassword("")
		assert.Empty(t, hash)
		assert.Equal(t, auth.ErrNoEmptyString, err)
	})

	t.Run("salts every hash", func(t *testing.T) {
		a, err := auth.HashPassword("same-password")
		require.NoError(t, err)
		b, err := auth.HashPassword("same-password")
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})
}

func TestComparePasswordAndHash(t *testing.T) {
	hash, err := auth.HashPassword("s3cret-enough")
	require.NoError(t, err)

	t.Run("accepts the matching password", func(t *testing.T) {
		assert.NoError(t, auth.ComparePasswordAndHash("s3cret-enough", hash))
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		err := auth.ComparePasswordAndHash("wrong-password", hash)
		assert.Equal(t, auth.ErrMismatchedHashAndPassword, err)
	})

	t.Run("an empty hash never matches", func(t *testing.T) {
		err := auth.ComparePasswordAndHash("anything", "")
		assert.Equal(t, auth.ErrMismatchedHashAndPassword, err)

		err = auth.ComparePasswordAndHash("", "")
		assert.Equal(t, auth.ErrMismatchedHashAndPassword, err)
	})
}
