package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordProducesUniqueDigests(t *testing.T) {
	h1, err := HashPassword("secret1")
	require.NoError(t, err)
	h2, err := HashPassword("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, "secret1", h1)
	assert.NotEqual(t, h1, h2)
	assert.True(t, CompareHashAndPassword(h1, "secret1"))
	assert.True(t, CompareHashAndPassword(h2, "secret1"))
}

func TestCompareHashAndPasswordRejectsWrongPassword(t *testing.T) {
	h, err := HashPassword("secret1")
	require.NoError(t, err)

	assert.False(t, CompareHashAndPassword(h, "wrongpw"))
	assert.False(t, CompareHashAndPassword(h, ""))
}

func TestCompareHashAndPasswordMalformedDigest(t *testing.T) {
	assert.False(t, CompareHashAndPassword("not-a-bcrypt-digest", "secret1"))
	assert.False(t, CompareHashAndPassword("", "secret1"))
}
