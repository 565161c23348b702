package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	tm := NewTokenManager("super-secret", time.Hour)

	session, err := tm.GenerateToken(42, "ann@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)

	claims, err := tm.ParseToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "ann@x.com", claims.Email)
	assert.Equal(t, "42", claims.Subject)
	assert.WithinDuration(t, session.ExpiresAt, claims.ExpiresAt.Time, time.Second)
}

func TestDefaultTTLIsSevenDays(t *testing.T) {
	fixed := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tm := NewTokenManager("k", 0)
	tm.now = func() time.Time { return fixed }

	session, err := tm.GenerateToken(1, "a@b.co")
	require.NoError(t, err)
	assert.Equal(t, fixed.Add(7*24*time.Hour), session.ExpiresAt)
}

func TestParseExpired(t *testing.T) {
	tm := NewTokenManager("k", time.Hour)
	issued := time.Now().Add(-2 * time.Hour)
	tm.now = func() time.Time { return issued }

	session, err := tm.GenerateToken(1, "a@b.co")
	require.NoError(t, err)

	tm.now = time.Now
	_, err = tm.ParseToken(session.Token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseWrongSecret(t *testing.T) {
	session, err := NewTokenManager("right", time.Hour).GenerateToken(1, "a@b.co")
	require.NoError(t, err)

	_, err = NewTokenManager("wrong", time.Hour).ParseToken(session.Token)
	assert.Error(t, err)
}

func TestParseRejectsOtherAlgorithms(t *testing.T) {
	claims := &Claims{
		UserID: 1,
		Email:  "a@b.co",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = NewTokenManager("k", time.Hour).ParseToken(signed)
	assert.Error(t, err)
}

func TestParseRequiresExpiry(t *testing.T) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{UserID: 1}).SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = NewTokenManager("k", time.Hour).ParseToken(signed)
	assert.Error(t, err)
}

func TestParseMalformed(t *testing.T) {
	_, err := NewTokenManager("k", time.Hour).ParseToken("not.a.jwt")
	assert.Error(t, err)
}
