package rbac

import "errors"

var (
	// ErrUnverified means the account has not confirmed its email address.
	ErrUnverified = errors.New("rbac: account not verified")

	// ErrRoleNotAllowed means the account's role is not in the allowed set.
	ErrRoleNotAllowed = errors.New("rbac: role not allowed")
)

// Identity is the slice of an account record the gate consults. It is
// fetched fresh from persistence at authorization time, never cached across
// requests and never taken from token claims.
type Identity struct {
	Role     string
	Verified bool
}

// Authorize is a pure function over an already-authenticated identity.
// Checks run in fixed order: verification status first, then role
// membership.
func Authorize(id Identity, allowed ...string) error {
	if !id.Verified {
		return ErrUnverified
	}

	for _, r := range allowed {
		if id.Role == r {
			return nil
		}
	}
	return ErrRoleNotAllowed
}
