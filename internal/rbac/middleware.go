package rbac

import (
	"context"
	"errors"
	"net/http"

	"bookly/internal/auth"

	"github.com/gin-gonic/gin"
)

// IdentityLookup hydrates role/verification status for an authenticated
// email. It is a function injection so this package carries no persistence
// assumptions.
type IdentityLookup func(ctx context.Context, email string) (Identity, error)

// RequireAnyRole allows the request to proceed if the caller's account is
// verified and holds any of the provided roles. It must run after
// auth.RequireToken; the identity record is looked up per request.
func RequireAnyRole(lookup IdentityLookup, allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, err := auth.Email(c.Request.Context())
		if err != nil || email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "authentication required",
				"error_code": "invalid_token",
			})
			return
		}

		id, err := lookup(c.Request.Context(), email)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "account not found",
				"error_code": "invalid_token",
			})
			return
		}

		if err := Authorize(id, allowed...); err != nil {
			switch {
			case errors.Is(err, ErrUnverified):
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
					"error":      "please check your email for verification details",
					"error_code": "unverified",
				})
			default:
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
					"error":      "you are not allowed to perform this action",
					"error_code": "role_not_allowed",
				})
			}
			return
		}

		c.Next()
	}
}
