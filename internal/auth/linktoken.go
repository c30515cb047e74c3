package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LinkCodec signs short-lived action tokens for one-off link flows (email
// confirmation). Tokens are stateless: verified by signature plus max-age
// against the embedded issued-at, never by revocation lookup, and carry no
// jti. Single-use semantics belong to application logic (the verified flag
// flips once), not to the token layer.
//
// The signing key is derived from the server secret and a fixed salt so link
// tokens and session tokens never validate against each other.
type LinkCodec struct {
	key []byte
}

const linkTokenSalt = "email-verification"

func NewLinkCodec(secret string) (*LinkCodec, error) {
	if secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(linkTokenSalt))
	return &LinkCodec{key: mac.Sum(nil)}, nil
}

type linkClaims struct {
	jwt.RegisteredClaims

	Data map[string]string `json:"data"`
}

// Issue signs payload with an implicit issuance timestamp. No store write.
func (lc *LinkCodec) Issue(now time.Time, payload map[string]string) (string, error) {
	claims := linkClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
		Data: payload,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(lc.key)
}

// Verify checks the signature, then the token's age (now - issuedAt must not
// exceed maxAge). Returns the payload on success.
func (lc *LinkCodec) Verify(tokenString string, maxAge time.Duration, now time.Time) (map[string]string, error) {
	var claims linkClaims

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	_, err := parser.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return lc.key, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, ErrSignatureInvalid
		}
		return nil, ErrMalformedToken
	}

	if claims.IssuedAt == nil {
		return nil, ErrMalformedToken
	}
	if now.Sub(claims.IssuedAt.Time) > maxAge {
		return nil, ErrExpired
	}

	return claims.Data, nil
}
