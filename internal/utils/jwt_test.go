package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken("test-secret", 42, "faculty", 15)
	require.NoError(t, err)
	require.NotEmpty(t, tok.Token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), tok.Exp, 5*time.Second)

	claims, err := ParseAccessToken("test-secret", tok.Token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, "faculty", claims.Role)
}

func TestParseAccessTokenRejectsBadInput(t *testing.T) {
	tok, err := NewAccessToken("test-secret", 1, "student", 15)
	require.NoError(t, err)

	tests := []struct {
		name   string
		secret string
		raw    string
	}{
		{"wrong secret", "other-secret", tok.Token},
		{"garbage token", "test-secret", "not.a.token"},
		{"empty token", "test-secret", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAccessToken(tt.secret, tt.raw)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	tok, err := NewAccessToken("test-secret", 1, "student", -1)
	require.NoError(t, err)

	_, err = ParseAccessToken("test-secret", tok.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
