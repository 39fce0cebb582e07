// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements bearer-token authentication. The middleware extracts a
// JWT from the Authorization header, verifies it through a TokenVerifier, and
// stashes the resulting user id in the Gin context under "userID" where the
// rest of the stack (handlers, rate limiter keying, logging) picks it up.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// TokenVerifier validates a compact JWT and returns the subject (user id).
//
// Implementations must return an error for expired, malformed, or otherwise
// untrusted tokens. AuthService.VerifyToken satisfies this interface.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

// RequireAuth returns a Gin middleware that rejects requests lacking a valid
// bearer token.
//
// Behavior:
//   - Missing or non-Bearer Authorization header: 401 with code "unauthorized".
//   - Token fails verification: 401 with code "unauthorized".
//   - Otherwise the user id is stored under "userID" and the chain continues.
//
// The error envelope matches the handlers package shape so clients see one
// consistent format regardless of which layer rejected them.
func RequireAuth(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			abortUnauthorized(c, "missing bearer token")
			return
		}

		uid, err := v.VerifyToken(token)
		if err != nil || uid == "" {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		c.Set("userID", uid)
		c.Next()
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. The scheme comparison is case-insensitive per RFC 6750.
func bearerToken(header string) string {
	const prefix = "bearer "
	if len(header) <= len(prefix) {
		return ""
	}
	if !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"request_id": c.Writer.Header().Get("X-Request-ID"),
		"code":       "unauthorized",
		"message":    msg,
	})
}
