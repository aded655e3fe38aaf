package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_NeverPlaintext(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("Passw0rd1")
	require.NoError(t, err)
	assert.NotEqual(t, "Passw0rd1", hash)
	assert.NotContains(t, hash, "Passw0rd1")
}

func TestCompareHashAndPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("Passw0rd1")
	require.NoError(t, err)

	assert.True(t, CompareHashAndPassword(hash, "Passw0rd1"))
	assert.False(t, CompareHashAndPassword(hash, "passw0rd1"))
	assert.False(t, CompareHashAndPassword(hash, ""))
	assert.False(t, CompareHashAndPassword("not-a-hash", "Passw0rd1"))
}
