package auth

import (
	"errors"
	"time"

	"bookly/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Manager signs and decodes access/refresh tokens. It holds the process-wide
// signing secret and TTLs, loaded once at startup and immutable afterwards.
//
// Decode is signature-only: temporal validity (expiry) and revocation are the
// Verifier's responsibility, so expiry policy can evolve independently of
// signing.
type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewManager(cfg config.AuthConfig) (*Manager, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return &Manager{
		secret:     []byte(cfg.JWTSecret),
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
	}, nil
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

/* ===================== ISSUE TOKENS ===================== */

// IssuePair mints an access/refresh token pair for the subject.
func (m *Manager) IssuePair(now time.Time, sub Subject) (TokenPair, error) {
	access, err := m.IssueAccessToken(now, sub)
	if err != nil {
		return TokenPair{}, err
	}

	refresh, err := m.IssueRefreshToken(now, sub)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

func (m *Manager) IssueAccessToken(now time.Time, sub Subject) (string, error) {
	return m.issue(now, sub, false, m.accessTTL)
}

func (m *Manager) IssueRefreshToken(now time.Time, sub Subject) (string, error) {
	return m.issue(now, sub, true, m.refreshTTL)
}

func (m *Manager) issue(now time.Time, sub Subject, refresh bool, ttl time.Duration) (string, error) {
	// Fresh jti per issuance; two tokens minted in the same instant for the
	// same subject still get distinct revocation keys.
	jti := uuid.NewString()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        jti,
		},
		User:    sub,
		Refresh: refresh,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

/* ===================== DECODE ===================== */

// Decode verifies the signature and shape of a token string and returns its
// claims. It deliberately does NOT enforce expiry; see Verifier.
//
// Every library-level failure collapses into ErrMalformedToken or
// ErrSignatureInvalid so callers never see partially-trusted claims or
// parser-specific diagnostics.
func (m *Manager) Decode(tokenString string) (Claims, error) {
	var claims Claims

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	_, err := parser.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return Claims{}, ErrSignatureInvalid
		}
		return Claims{}, ErrMalformedToken
	}

	if claims.ID == "" || claims.ExpiresAt == nil {
		return Claims{}, ErrMalformedToken
	}
	if claims.User.Email == "" || claims.User.UserID == "" {
		return Claims{}, ErrMalformedToken
	}

	return claims, nil
}
