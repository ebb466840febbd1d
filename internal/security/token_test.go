package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoveryTokenRoundTrip(t *testing.T) {
	token, err := GenerateRecoveryToken("secret", 42, "ana@example.com", time.Minute)
	require.NoError(t, err)

	claims, err := ParseRecoveryToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, PurposePasswordRecovery, claims.Purpose)
}

func TestRecoveryTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateRecoveryToken("secret", 42, "ana@example.com", time.Minute)
	require.NoError(t, err)

	_, err = ParseRecoveryToken(token, "other")
	assert.Error(t, err)
}

func TestRecoveryTokenRejectsExpired(t *testing.T) {
	token, err := GenerateRecoveryToken("secret", 42, "ana@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = ParseRecoveryToken(token, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestRecoveryTokenRejectsOtherPurpose(t *testing.T) {
	claims := RecoveryClaims{
		UserID:  42,
		Purpose: "session",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = ParseRecoveryToken(signed, "secret")
	assert.ErrorIs(t, err, ErrTokenPurpose)
}

func TestSignResource(t *testing.T) {
	sig := SignResource("secret", "session", "abc")

	assert.True(t, VerifyResource("secret", sig, "session", "abc"))
	assert.False(t, VerifyResource("secret", sig, "session", "abd"))
	assert.False(t, VerifyResource("other", sig, "session", "abc"))
	assert.NotContains(t, sig, "=")
}
