package auth

import (
	"context"
	"fmt"
	"time"
)

// Verifier runs a presented token string through a fixed sequence of checks,
// terminal on first failure:
//
//  1. decode (signature/shape)
//  2. revocation lookup
//  3. kind check (access vs refresh)
//  4. expiry check
//
// Revocation is checked before expiry so an explicitly revoked token is
// rejected with the same priority as a forged one. Kind is checked before
// expiry because presenting the wrong token kind is a caller-usage error,
// not staleness, and should not surface as a confusing expiry message.
type Verifier struct {
	manager   *Manager
	blocklist Blocklist
}

func NewVerifier(manager *Manager, blocklist Blocklist) (*Verifier, error) {
	if manager == nil {
		return nil, fmt.Errorf("token manager is required")
	}
	if blocklist == nil {
		return nil, fmt.Errorf("blocklist is required")
	}
	return &Verifier{manager: manager, blocklist: blocklist}, nil
}

// Verify checks tokenString against the expected kind and returns its claims.
// Every failure is one of the package sentinel errors; the revocation lookup
// failing yields ErrStoreUnavailable (fail closed, a store outage is never
// treated as "not revoked").
func (v *Verifier) Verify(ctx context.Context, tokenString string, kind TokenKind, now time.Time) (Claims, error) {
	claims, err := v.manager.Decode(tokenString)
	if err != nil {
		return Claims{}, err
	}

	marked, err := v.blocklist.IsMarked(ctx, claims.ID)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if marked {
		return Claims{}, ErrRevoked
	}

	if claims.Kind() != kind {
		if kind == KindAccess {
			return Claims{}, ErrAccessTokenRequired
		}
		return Claims{}, ErrRefreshTokenRequired
	}

	if !now.Before(claims.ExpiresAt.Time) {
		return Claims{}, ErrExpired
	}

	return claims, nil
}
