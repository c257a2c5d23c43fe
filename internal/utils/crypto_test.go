package utils

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSSNSealerRoundTrip(t *testing.T) {
	s, err := NewSSNSealer("")
	require.NoError(t, err)

	sealed, err := s.Seal("123-45-6789")
	require.NoError(t, err)
	assert.NotContains(t, string(sealed), "6789")

	plain, err := s.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "123-45-6789", plain)

	sealed[len(sealed)-1] ^= 0xff
	_, err = s.Open(sealed)
	assert.ErrorIs(t, err, ErrSealedData)
}

func TestSSNSealerFingerprint(t *testing.T) {
	key := base64.StdEncoding.EncodeToString([]byte(strings.Repeat("k", 32)))
	a, err := NewSSNSealer(key)
	require.NoError(t, err)
	b, err := NewSSNSealer(key)
	require.NoError(t, err)

	assert.Equal(t, a.Fingerprint("123-45-6789"), b.Fingerprint("123-45-6789"))
	assert.NotEqual(t, a.Fingerprint("123-45-6789"), a.Fingerprint("123-45-6788"))
	assert.Len(t, a.Fingerprint("123-45-6789"), 64)
}

func TestNewSSNSealerRejectsShortKey(t *testing.T) {
	_, err := NewSSNSealer(base64.StdEncoding.EncodeToString([]byte("short")))
	assert.ErrorIs(t, err, ErrSealKeyLength)
}

func TestLast4(t *testing.T) {
	assert.Equal(t, "6789", Last4("123-45-6789"))
	assert.Equal(t, "12", Last4("12"))
}

func TestOperatorTokenRoundTrip(t *testing.T) {
	token, err := GenerateOperatorToken("secret", "jdoe", "Jane Doe", "collections", time.Hour)
	require.NoError(t, err)

	claims, err := ParseOperatorToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "jdoe", claims.Subject)
	assert.True(t, claims.HasPermission("crm:write"))
	assert.False(t, claims.HasPermission("crm:funding"))

	_, err = ParseOperatorToken("other", token)
	assert.Error(t, err)
}
