package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTManager_EmptySecret(t *testing.T) {
	t.Parallel()

	_, err := NewJWTManager("", time.Hour)
	require.ErrorIs(t, err, ErrEmptySecret)

	_, err = NewJWTManager("   ", time.Hour)
	require.ErrorIs(t, err, ErrEmptySecret)
}

func TestGenerateAndParse_RoundTrip(t *testing.T) {
	t.Parallel()

	m, err := NewJWTManager("super-secret", time.Hour)
	require.NoError(t, err)

	token, exp, err := m.GenerateToken("user-123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	m, err := NewJWTManager("secret", time.Hour)
	require.NoError(t, err)
	m.TokenTTL = -time.Minute // mint an already-expired token

	token, _, err := m.GenerateToken("u1")
	require.NoError(t, err)

	_, err = m.ParseToken(token)
	require.Error(t, err)
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	right, err := NewJWTManager("right-secret", time.Hour)
	require.NoError(t, err)
	wrong, err := NewJWTManager("wrong-secret", time.Hour)
	require.NoError(t, err)

	token, _, err := right.GenerateToken("u2")
	require.NoError(t, err)

	_, err = wrong.ParseToken(token)
	require.Error(t, err)
}

func TestParseToken_Malformed(t *testing.T) {
	t.Parallel()

	m, err := NewJWTManager("k", time.Hour)
	require.NoError(t, err)

	for _, tok := range []string{"", "garbage", "not.a.jwt"} {
		_, err := m.ParseToken(tok)
		assert.Error(t, err, "token %q should not parse", tok)
	}
}
