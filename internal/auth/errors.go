package auth

import "errors"

// Token failures form a closed taxonomy. The verifier returns exactly one of
// these; only the HTTP boundary translates them into status codes and
// machine-readable error codes. Library-level diagnostics (bad base64, wrong
// algorithm, truncated segments) are collapsed into ErrMalformedToken or
// ErrSignatureInvalid and never leak to callers.
var (
	// ErrMalformedToken covers structurally invalid input rejected before or
	// during parsing.
	ErrMalformedToken = errors.New("auth: malformed token")

	// ErrSignatureInvalid covers tokens whose signature does not verify
	// against the configured secret.
	ErrSignatureInvalid = errors.New("auth: invalid token signature")

	// ErrRevoked covers tokens whose jti is present in the blocklist.
	ErrRevoked = errors.New("auth: token revoked")

	// ErrAccessTokenRequired is returned when a refresh token is presented
	// where an access token is expected.
	ErrAccessTokenRequired = errors.New("auth: access token required")

	// ErrRefreshTokenRequired is returned when an access token is presented
	// where a refresh token is expected.
	ErrRefreshTokenRequired = errors.New("auth: refresh token required")

	// ErrExpired covers tokens past their expiry, and action tokens past
	// their max age.
	ErrExpired = errors.New("auth: token expired")

	// ErrStoreUnavailable is an infrastructure failure talking to the
	// revocation store. It is never treated as "not revoked"; requests fail
	// closed.
	ErrStoreUnavailable = errors.New("auth: revocation store unavailable")
)
