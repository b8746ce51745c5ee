package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionToken_RoundTrip(t *testing.T) {
	token, err := GenerateSessionToken("client-123", "secret", 7)
	require.NoError(t, err)

	claims, err := ValidateSessionToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "client-123", claims.ClientID())
}

func TestSessionToken_WrongSecret(t *testing.T) {
	token, err := GenerateSessionToken("client-123", "secret", 7)
	require.NoError(t, err)

	_, err = ValidateSessionToken(token, "other")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestSessionToken_Expired(t *testing.T) {
	token, err := GenerateSessionToken("client-123", "secret", -1)
	require.NoError(t, err)

	_, err = ValidateSessionToken(token, "secret")
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestSessionToken_Garbage(t *testing.T) {
	_, err := ValidateSessionToken("not.a.token", "secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestSessionToken_EmptySubject(t *testing.T) {
	token, err := GenerateSessionToken("", "secret", 7)
	require.NoError(t, err)

	_, err = ValidateSessionToken(token, "secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
