package middleware

// identity.go defines helper functions shared across middleware files.
// It provides a user-identifier extraction function used by the rate
// limiter's keying strategies. When no authenticated identity exists in
// the context (public routes, unauthenticated clients), "anon" is
// returned so all guests share one bucket per strategy.

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// currentUserID extracts the authenticated user ID stored by JWTAuth,
// formatted for use in a rate-limit key. Returns "anon" when absent.
func currentUserID(c echo.Context) string {
	switch v := c.Get("user_id").(type) {
	case uint64:
		if v != 0 {
			return strconv.FormatUint(v, 10)
		}
	case string:
		if v != "" {
			return v
		}
	}
	return "anon"
}
