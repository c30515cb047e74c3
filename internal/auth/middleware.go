package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const authorizationHeader = "Authorization"
const bearerPrefix = "Bearer "

// RequireToken verifies a bearer token of the expected kind and injects
// identity into request context. It does not perform role checks; those
// belong to internal/rbac.
func RequireToken(v *Verifier, kind TokenKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(authorizationHeader))
		if raw == "" || !strings.HasPrefix(raw, bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "missing bearer token",
				"error_code": "invalid_token",
			})
			return
		}
		tok := strings.TrimPrefix(raw, bearerPrefix)

		claims, err := v.Verify(c.Request.Context(), tok, kind, time.Now())
		if err != nil {
			abortWithTokenError(c, err)
			return
		}

		ctx := WithIdentity(c.Request.Context(), claims.User.Email, claims.User.UserID, claims.ID)
		c.Request = c.Request.WithContext(ctx)

		// Also store on gin context for handler convenience.
		c.Set("email", claims.User.Email)
		c.Set("user_id", claims.User.UserID)
		c.Set("token_id", claims.ID)

		c.Next()
	}
}

// abortWithTokenError maps the verifier's sentinel errors to transport
// responses. This is the only place verification failures gain an HTTP
// status or machine-readable code.
func abortWithTokenError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrExpired):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":      "this token is expired",
			"error_code": "expired_token",
		})
	case errors.Is(err, ErrAccessTokenRequired):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":      "please provide a valid access token",
			"error_code": "access_token_required",
		})
	case errors.Is(err, ErrRefreshTokenRequired):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":      "please provide a valid refresh token",
			"error_code": "refresh_token_required",
		})
	case errors.Is(err, ErrStoreUnavailable):
		// Fail closed: a store outage must not look like a bad token, and
		// must never be treated as "not revoked".
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
			"error":      "authentication temporarily unavailable",
			"error_code": "server_error",
		})
	default:
		// Malformed, bad signature, revoked: one coarse answer.
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":      "this token is invalid or has been revoked",
			"error_code": "invalid_token",
		})
	}
}
