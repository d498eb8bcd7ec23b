package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "me",
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("secret"))
	require.NoError(t, err)
	return s
}

func TestOpaqueTokenPassesThrough(t *testing.T) {
	got, err := NewStaticProvider("opaque-token").Token()
	require.NoError(t, err)
	assert.Equal(t, "opaque-token", got)
}

func TestBearerPrefixTrimmed(t *testing.T) {
	got, err := NewStaticProvider("Bearer abc").Token()
	require.NoError(t, err)
	assert.Equal(t, "abc", got)
}

func TestEmptyTokenRejected(t *testing.T) {
	_, err := NewStaticProvider("").Token()
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestExpiredJWTRejected(t *testing.T) {
	_, err := NewStaticProvider(signedToken(t, time.Now().Add(-time.Hour))).Token()
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestLiveJWTAccepted(t *testing.T) {
	_, err := NewStaticProvider(signedToken(t, time.Now().Add(time.Hour))).Token()
	assert.NoError(t, err)
}
