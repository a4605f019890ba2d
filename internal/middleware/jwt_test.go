package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/digital-notice-board/internal/utils"
)

const testSecret = "test-secret"

// gateRequest runs a request through JWTAuth in front of a probe
// handler and reports whether the probe was reached.
func gateRequest(t *testing.T, authorization string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	reached := false
	e.GET("/protected", func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	}, JWTAuth(testSecret))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec, reached
}

func TestJWTAuthMissingToken(t *testing.T) {
	rec, reached := gateRequest(t, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "access denied, no token provided")
	assert.False(t, reached, "handler must not run without a token")
}

func TestJWTAuthInvalidToken(t *testing.T) {
	expired, err := utils.NewAccessToken(testSecret, 1, "student", -1)
	require.NoError(t, err)
	wrongKey, err := utils.NewAccessToken("other-secret", 1, "student", 15)
	require.NoError(t, err)

	tests := []struct {
		name string
		auth string
	}{
		{"malformed token", "Bearer not.a.token"},
		{"expired token", "Bearer " + expired.Token},
		{"wrong signing key", "Bearer " + wrongKey.Token},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, reached := gateRequest(t, tt.auth)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "invalid token")
			assert.False(t, reached, "handler must not run with an invalid token")
		})
	}
}

func TestJWTAuthAcceptsTokenWithAndWithoutBearer(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 7, "librarian", 15)
	require.NoError(t, err)

	for _, auth := range []string{"Bearer " + tok.Token, tok.Token} {
		rec, reached := gateRequest(t, auth)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, reached)
	}
}

func TestJWTAuthInjectsClaims(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 99, "admin", 15)
	require.NoError(t, err)

	e := echo.New()
	e.GET("/whoami", func(c echo.Context) error {
		assert.Equal(t, uint64(99), c.Get("user_id"))
		assert.Equal(t, "admin", c.Get("role"))
		return c.NoContent(http.StatusOK)
	}, JWTAuth(testSecret))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
