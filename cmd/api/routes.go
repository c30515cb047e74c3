package main

import (
	"bookly/internal/auth"
	"bookly/internal/httpapi"
	"bookly/internal/rbac"

	"github.com/gin-gonic/gin"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to
// internal modules.
func registerRoutes(
	r *gin.Engine,
	verifier *auth.Verifier,
	identities rbac.IdentityLookup,
	authH httpapi.AuthHandlers,
	bookH httpapi.BookHandlers,
) {
	// public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")

	// AUTH routes. signup/signin/verify are public; the rest declare which
	// token kind guards them.
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/signup", authH.Signup)
		authGroup.POST("/signin", authH.Signin)
		authGroup.GET("/verify/:token", authH.VerifyEmail)

		authGroup.POST("/refresh_token", auth.RequireToken(verifier, auth.KindRefresh), authH.Refresh)
		authGroup.GET("/logout", auth.RequireToken(verifier, auth.KindAccess), authH.Logout)
		authGroup.GET("/me", auth.RequireToken(verifier, auth.KindAccess), authH.Me)
	}

	// BOOKS routes. Reading needs an access token; writing additionally
	// needs a verified account with an allowed role.
	booksGroup := v1.Group("/books")
	booksGroup.Use(auth.RequireToken(verifier, auth.KindAccess))
	{
		booksGroup.GET("", bookH.List)
		booksGroup.GET("/:book_id", bookH.Get)

		write := booksGroup.Group("")
		write.Use(rbac.RequireAnyRole(identities, rbac.RoleUser, rbac.RoleAdmin))
		{
			write.POST("", bookH.Create)
			write.PUT("/:book_id", bookH.Update)
		}

		// Destructive ops are admin-only.
		admin := booksGroup.Group("")
		admin.Use(rbac.RequireAnyRole(identities, rbac.RoleAdmin))
		{
			admin.DELETE("/:book_id", bookH.Delete)
		}
	}
}
