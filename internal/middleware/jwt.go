package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/iliyamo/digital-notice-board/internal/metrics"
	"github.com/iliyamo/digital-notice-board/internal/utils"
)

// JWTAuth returns an Echo middleware that validates an access token and
// injects the token's subject and role claims into the request context.
// The provided secret must match the one used when issuing tokens.
// This middleware wraps every mutating notice route and the user
// management routes so that handlers can read the authenticated
// identity via `c.Get("user_id")` and `c.Get("role")`.
//
// The Authorization header may carry the raw token or the conventional
// "Bearer <token>" form; the prefix is stripped before verification.
// A missing header yields 401. Any verification failure (malformed,
// bad signature, expired) yields a single 400 "invalid token"
// response; the causes are not distinguished.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := strings.TrimSpace(c.Request().Header.Get("Authorization"))
			if auth == "" {
				metrics.AuthFailure("unauthenticated")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "access denied, no token provided"})
			}
			// Strip the optional "Bearer " prefix to obtain the raw token.
			raw := strings.TrimPrefix(auth, "Bearer ")

			claims, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				metrics.AuthFailure("invalid_token")
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid token"})
			}

			// Store the subject (user ID) and role claims in the context.
			// Handlers and downstream middleware access these via c.Get().
			c.Set("user_id", claims.UserID)
			c.Set("role", claims.Role)
			return next(c)
		}
	}
}
