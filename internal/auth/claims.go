package auth

import "github.com/golang-jwt/jwt/v5"

type TokenKind string

const (
	KindAccess  TokenKind = "access"
	KindRefresh TokenKind = "refresh"
)

// Subject identifies the account a token was issued for.
// It is the only identity data the token layer trusts; role and
// verification status are always re-fetched from persistence at
// authorization time, never cached in the token.
type Subject struct {
	Email  string `json:"email"`
	UserID string `json:"user_uid"`
}

// Claims are the only supported JWT claims shape for this service.
// RegisteredClaims.ID carries the per-issuance jti used as the revocation
// key; it is minted fresh on every issue and never derived from the subject.
type Claims struct {
	jwt.RegisteredClaims

	User    Subject `json:"user"`
	Refresh bool    `json:"refresh"`
}

// Kind reports which token kind the claims were issued as.
func (c Claims) Kind() TokenKind {
	if c.Refresh {
		return KindRefresh
	}
	return KindAccess
}
