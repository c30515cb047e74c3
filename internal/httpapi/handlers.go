package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"bookly/internal/audit"
	"bookly/internal/auth"
	"bookly/internal/books"
	"bookly/internal/mail"
	"bookly/internal/users"
	"bookly/pkg/logger"

	"github.com/gin-gonic/gin"
)

// AuthHandlers groups the authentication endpoints for dependency injection.
// Keep these thin: parse/validate input, call internal services, return
// JSON. Status codes and error_code strings are decided here and nowhere
// else.
type AuthHandlers struct {
	Users      *users.Service
	Tokens     *auth.Manager
	Blocklist  auth.Blocklist
	Links      *auth.LinkCodec
	LinkMaxAge time.Duration
	Mail       mail.Sender
	Audit      *audit.Service
	Limiter    *LoginLimiter
	BaseURL    string
}

// --- Signup ---

func (h AuthHandlers) Signup(c *gin.Context) {
	var req users.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	u, err := h.Users.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, users.ErrEmailTaken) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":      "user with this email already exists",
				"error_code": "user_exists",
			})
			return
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.sendVerificationLink(c, u.Email)
	h.logAudit(c, audit.EventTypeSignup, u.Email, u.ID, "")

	c.JSON(http.StatusCreated, u)
}

func (h AuthHandlers) sendVerificationLink(c *gin.Context, email string) {
	tok, err := h.Links.Issue(time.Now(), map[string]string{"email": email})
	if err != nil {
		logger.FromGin(c).Error("link token issue failed", "err", err)
		return
	}
	link := fmt.Sprintf("%s/api/v1/auth/verify/%s", h.BaseURL, tok)
	if err := h.Mail.SendVerificationLink(c.Request.Context(), email, link); err != nil {
		// Mail delivery is best-effort; the account can re-request a link.
		logger.FromGin(c).Error("verification mail failed", "err", err)
	}
}

// --- Signin ---

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h AuthHandlers) Signin(c *gin.Context) {
	var req signinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	if h.Limiter != nil {
		blocked, err := h.Limiter.Blocked(c.Request.Context(), req.Email)
		if err != nil {
			logger.FromGin(c).Error("login limiter check failed", "err", err)
		} else if blocked {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":      "too many failed attempts, try again later",
				"error_code": "too_many_attempts",
			})
			return
		}
	}

	u, err := h.Users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			if h.Limiter != nil {
				_, _ = h.Limiter.Failure(c.Request.Context(), req.Email)
			}
			h.logAudit(c, audit.EventTypeLoginFailed, req.Email, "", "")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":      "incorrect email or password",
				"error_code": "invalid_credentials",
			})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	if h.Limiter != nil {
		_ = h.Limiter.Reset(c.Request.Context(), req.Email)
	}

	pair, err := h.Tokens.IssuePair(time.Now(), auth.Subject{Email: u.Email, UserID: u.ID})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "token issuance failed"})
		return
	}

	h.logAudit(c, audit.EventTypeLogin, u.Email, u.ID, "")

	c.JSON(http.StatusOK, gin.H{
		"message":       "you are now logged in",
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"user":          gin.H{"email": u.Email, "uid": u.ID},
	})
}

// --- Refresh ---

// Refresh mints a new access token from a refresh token. The refresh-token
// guard has already decoded, revocation-checked and expiry-checked the
// presented token, so a request reaching this handler holds a still-valid
// refresh token; an expired one is rejected upstream with expired_token.
func (h AuthHandlers) Refresh(c *gin.Context) {
	ctx := c.Request.Context()
	email, err := auth.Email(ctx)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	userID, _ := auth.UserID(ctx)
	jti, _ := auth.TokenID(ctx)

	access, err := h.Tokens.IssueAccessToken(time.Now(), auth.Subject{Email: email, UserID: userID})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "token issuance failed"})
		return
	}

	h.logTokenAudit(c, audit.EventTypeTokenRefresh, email, userID, jti)

	c.JSON(http.StatusOK, gin.H{
		"message":      "new access token created",
		"access_token": access,
	})
}

// --- Logout ---

func (h AuthHandlers) Logout(c *gin.Context) {
	ctx := c.Request.Context()
	jti, err := auth.TokenID(ctx)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	if err := h.Blocklist.Mark(ctx, jti); err != nil {
		// Fail closed: if the revocation cannot be recorded the logout did
		// not happen.
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
			"error":      "logout temporarily unavailable",
			"error_code": "server_error",
		})
		return
	}

	email, _ := auth.Email(ctx)
	userID, _ := auth.UserID(ctx)
	h.logTokenAudit(c, audit.EventTypeLogout, email, userID, jti)

	c.JSON(http.StatusOK, gin.H{"message": "you are now logged out"})
}

// --- Me ---

func (h AuthHandlers) Me(c *gin.Context) {
	email, err := auth.Email(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	u, err := h.Users.FindByEmail(c.Request.Context(), email)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "account not found"})
		return
	}
	c.JSON(http.StatusOK, u)
}

// --- Email verification ---

func (h AuthHandlers) VerifyEmail(c *gin.Context) {
	tok := c.Param("token")

	payload, err := h.Links.Verify(tok, h.LinkMaxAge, time.Now())
	if err != nil {
		if errors.Is(err, auth.ErrExpired) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "this verification link has expired",
				"error_code": "expired_token",
			})
			return
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":      "this verification link is invalid",
			"error_code": "invalid_token",
		})
		return
	}

	email := payload["email"]
	if email == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":      "this verification link is invalid",
			"error_code": "invalid_token",
		})
		return
	}

	if err := h.Users.MarkVerified(c.Request.Context(), email); err != nil {
		if errors.Is(err, users.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "account not found"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "verification failed"})
		return
	}

	h.logAudit(c, audit.EventTypeEmailVerified, email, "", "")

	c.JSON(http.StatusOK, gin.H{"message": "account verified"})
}

func (h AuthHandlers) logAudit(c *gin.Context, t audit.EventType, email, userID, msg string) {
	if h.Audit == nil {
		return
	}
	if err := h.Audit.LogAuth(c.Request.Context(), t, email, userID, c.ClientIP(), msg); err != nil {
		logger.FromGin(c).Error("audit append failed", "err", err)
	}
}

func (h AuthHandlers) logTokenAudit(c *gin.Context, t audit.EventType, email, userID, jti string) {
	if h.Audit == nil {
		return
	}
	if err := h.Audit.LogToken(c.Request.Context(), t, email, userID, jti, c.ClientIP()); err != nil {
		logger.FromGin(c).Error("audit append failed", "err", err)
	}
}

// BookHandlers groups the catalog endpoints.
type BookHandlers struct {
	Books *books.Service
}

func (h BookHandlers) List(c *gin.Context) {
	out, err := h.Books.List(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "listing failed"})
		return
	}
	if out == nil {
		out = []books.Book{}
	}
	c.JSON(http.StatusOK, out)
}

func (h BookHandlers) Get(c *gin.Context) {
	b, err := h.Books.Get(c.Request.Context(), c.Param("book_id"))
	if err != nil {
		if errors.Is(err, books.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "book not found"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h BookHandlers) Create(c *gin.Context) {
	var req books.CreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	b, err := h.Books.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, books.ErrInvalidInput) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "title and author are required"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h BookHandlers) Update(c *gin.Context) {
	var req books.UpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	b, err := h.Books.Update(c.Request.Context(), c.Param("book_id"), req)
	if err != nil {
		switch {
		case errors.Is(err, books.ErrNotFound):
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "book not found"})
		case errors.Is(err, books.ErrInvalidInput):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "title and author are required"})
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		}
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h BookHandlers) Delete(c *gin.Context) {
	if err := h.Books.Delete(c.Request.Context(), c.Param("book_id")); err != nil {
		if errors.Is(err, books.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "book not found"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.Status(http.StatusNoContent)
}
