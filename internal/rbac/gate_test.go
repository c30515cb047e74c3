package rbac

import (
	"errors"
	"testing"
)

func TestAuthorize(t *testing.T) {
	cases := []struct {
		name    string
		id      Identity
		allowed []string
		wantErr error
	}{
		{"verified allowed role", Identity{Role: RoleUser, Verified: true}, []string{RoleUser, RoleAdmin}, nil},
		{"verified admin", Identity{Role: RoleAdmin, Verified: true}, []string{RoleAdmin}, nil},
		{"role not in set", Identity{Role: RoleUser, Verified: true}, []string{RoleAdmin}, ErrRoleNotAllowed},
		{"empty allowed set", Identity{Role: RoleUser, Verified: true}, nil, ErrRoleNotAllowed},
		{"unverified", Identity{Role: RoleUser, Verified: false}, []string{RoleUser}, ErrUnverified},
		// Verification is checked first even when the role would also fail.
		{"unverified wrong role", Identity{Role: RoleUser, Verified: false}, []string{RoleAdmin}, ErrUnverified},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Authorize(tc.id, tc.allowed...)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}
