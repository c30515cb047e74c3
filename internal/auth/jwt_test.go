package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"bookly/internal/config"
)

func testManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(config.AuthConfig{
		JWTSecret:       "secret",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 48 * time.Hour,
	})
	if err != nil {
		t.Fatalf("manager: %v", err)
	}
	return m
}

func TestIssueAndDecodeRoundTrip(t *testing.T) {
	m := testManager(t)
	now := time.Unix(1700000000, 0).UTC()
	sub := Subject{Email: "a@x.com", UserID: "u1"}

	tok, err := m.IssueAccessToken(now, sub)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if len(strings.Split(tok, ".")) != 3 {
		t.Fatalf("expected three-part token, got %q", tok)
	}

	claims, err := m.Decode(tok)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if claims.User != sub {
		t.Fatalf("unexpected subject: %+v", claims.User)
	}
	if claims.Refresh {
		t.Fatalf("access token must not be marked refresh")
	}
	if !claims.ExpiresAt.Time.Equal(now.Add(time.Hour)) {
		t.Fatalf("unexpected expiry: %v", claims.ExpiresAt.Time)
	}
	if claims.ID == "" {
		t.Fatalf("expected a jti")
	}
}

func TestIssueKindsAndFreshJTI(t *testing.T) {
	m := testManager(t)
	now := time.Now()
	sub := Subject{Email: "a@x.com", UserID: "u1"}

	access, err := m.IssueAccessToken(now, sub)
	if err != nil {
		t.Fatalf("issue access: %v", err)
	}
	refresh, err := m.IssueRefreshToken(now, sub)
	if err != nil {
		t.Fatalf("issue refresh: %v", err)
	}

	ac, err := m.Decode(access)
	if err != nil {
		t.Fatalf("decode access: %v", err)
	}
	rc, err := m.Decode(refresh)
	if err != nil {
		t.Fatalf("decode refresh: %v", err)
	}

	if ac.Kind() != KindAccess || rc.Kind() != KindRefresh {
		t.Fatalf("unexpected kinds: %v %v", ac.Kind(), rc.Kind())
	}
	// Same instant, same subject, distinct revocation keys.
	if ac.ID == rc.ID {
		t.Fatalf("jti must be unique per issuance")
	}
}

func TestDecodeDoesNotEnforceExpiry(t *testing.T) {
	m := testManager(t)
	past := time.Now().Add(-72 * time.Hour)

	tok, err := m.IssueAccessToken(past, Subject{Email: "a@x.com", UserID: "u1"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Temporal validity belongs to the Verifier; signature-valid but expired
	// tokens still decode.
	if _, err := m.Decode(tok); err != nil {
		t.Fatalf("decode of expired token: %v", err)
	}
}

func TestDecodeRejectsTamperedBytes(t *testing.T) {
	m := testManager(t)
	tok, err := m.IssueAccessToken(time.Now(), Subject{Email: "a@x.com", UserID: "u1"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Flip one character at a spread of positions across payload and
	// signature segments. Segment-final characters are skipped: unpadded
	// base64 leaves unused bits there, so a flip can decode identically.
	firstDot := strings.IndexByte(tok, '.')
	for i := firstDot + 1; i < len(tok); i += 7 {
		if tok[i] == '.' {
			continue
		}
		if i+1 == len(tok) || tok[i+1] == '.' {
			continue
		}
		flip := byte('A')
		if tok[i] == flip {
			flip = 'B'
		}
		mutated := tok[:i] + string(flip) + tok[i+1:]

		if _, err := m.Decode(mutated); err == nil {
			t.Fatalf("tampered token at index %d decoded successfully", i)
		}
	}
}

func TestDecodeRejectsWrongSecret(t *testing.T) {
	m := testManager(t)
	other, err := NewManager(config.AuthConfig{
		JWTSecret:       "different",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 48 * time.Hour,
	})
	if err != nil {
		t.Fatalf("manager: %v", err)
	}

	tok, err := other.IssueAccessToken(time.Now(), Subject{Email: "a@x.com", UserID: "u1"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := m.Decode(tok); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected ErrSignatureInvalid, got %v", err)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	m := testManager(t)
	for _, tok := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		if _, err := m.Decode(tok); !errors.Is(err, ErrMalformedToken) {
			t.Fatalf("token %q: expected ErrMalformedToken, got %v", tok, err)
		}
	}
}
