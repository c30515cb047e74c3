package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeBlocklist is an in-memory stand-in for the Redis store.
type fakeBlocklist struct {
	marked map[string]bool
	err    error
}

func newFakeBlocklist() *fakeBlocklist {
	return &fakeBlocklist{marked: make(map[string]bool)}
}

func (f *fakeBlocklist) Mark(ctx context.Context, jti string) error {
	if f.err != nil {
		return f.err
	}
	f.marked[jti] = true
	return nil
}

func (f *fakeBlocklist) IsMarked(ctx context.Context, jti string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.marked[jti], nil
}

func TestVerifySuccess(t *testing.T) {
	m := testManager(t)
	v, err := NewVerifier(m, newFakeBlocklist())
	if err != nil {
		t.Fatalf("verifier: %v", err)
	}

	now := time.Unix(1700000000, 0).UTC()
	sub := Subject{Email: "a@x.com", UserID: "u1"}

	tok, err := m.IssueAccessToken(now, sub)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := v.Verify(context.Background(), tok, KindAccess, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.User != sub {
		t.Fatalf("unexpected subject: %+v", claims.User)
	}
}

func TestVerifyRejectsRevoked(t *testing.T) {
	m := testManager(t)
	bl := newFakeBlocklist()
	v, _ := NewVerifier(m, bl)

	now := time.Now()
	tok, _ := m.IssueAccessToken(now, Subject{Email: "a@x.com", UserID: "u1"})
	claims, err := v.Verify(context.Background(), tok, KindAccess, now)
	if err != nil {
		t.Fatalf("verify before revocation: %v", err)
	}

	if err := bl.Mark(context.Background(), claims.ID); err != nil {
		t.Fatalf("mark: %v", err)
	}

	if _, err := v.Verify(context.Background(), tok, KindAccess, now); !errors.Is(err, ErrRevoked) {
		t.Fatalf("expected ErrRevoked, got %v", err)
	}
}

func TestVerifyKindMismatch(t *testing.T) {
	m := testManager(t)
	v, _ := NewVerifier(m, newFakeBlocklist())

	now := time.Now()
	sub := Subject{Email: "a@x.com", UserID: "u1"}
	access, _ := m.IssueAccessToken(now, sub)
	refresh, _ := m.IssueRefreshToken(now, sub)

	if _, err := v.Verify(context.Background(), refresh, KindAccess, now); !errors.Is(err, ErrAccessTokenRequired) {
		t.Fatalf("expected ErrAccessTokenRequired, got %v", err)
	}
	if _, err := v.Verify(context.Background(), access, KindRefresh, now); !errors.Is(err, ErrRefreshTokenRequired) {
		t.Fatalf("expected ErrRefreshTokenRequired, got %v", err)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	m := testManager(t)
	v, _ := NewVerifier(m, newFakeBlocklist())

	now := time.Unix(1700000000, 0).UTC()
	tok, _ := m.IssueAccessToken(now, Subject{Email: "a@x.com", UserID: "u1"})

	// Never revoked, signature valid, but past expiry.
	if _, err := v.Verify(context.Background(), tok, KindAccess, now.Add(time.Hour+time.Second)); !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}

	// Exactly at expiry counts as expired.
	if _, err := v.Verify(context.Background(), tok, KindAccess, now.Add(time.Hour)); !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired at boundary, got %v", err)
	}
}

func TestVerifyFailsClosedOnStoreError(t *testing.T) {
	m := testManager(t)
	bl := newFakeBlocklist()
	bl.err = errors.New("connection refused")
	v, _ := NewVerifier(m, bl)

	now := time.Now()
	tok, _ := m.IssueAccessToken(now, Subject{Email: "a@x.com", UserID: "u1"})

	_, err := v.Verify(context.Background(), tok, KindAccess, now)
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestVerifyChecksRevocationBeforeKindAndExpiry(t *testing.T) {
	m := testManager(t)
	bl := newFakeBlocklist()
	v, _ := NewVerifier(m, bl)

	now := time.Unix(1700000000, 0).UTC()
	refresh, _ := m.IssueRefreshToken(now, Subject{Email: "a@x.com", UserID: "u1"})
	claims, _ := m.Decode(refresh)
	_ = bl.Mark(context.Background(), claims.ID)

	// Revoked, wrong kind, and expired all at once: revocation wins.
	if _, err := v.Verify(context.Background(), refresh, KindAccess, now.Add(100*24*time.Hour)); !errors.Is(err, ErrRevoked) {
		t.Fatalf("expected ErrRevoked to take priority, got %v", err)
	}
}

func TestVerifyChecksKindBeforeExpiry(t *testing.T) {
	m := testManager(t)
	v, _ := NewVerifier(m, newFakeBlocklist())

	now := time.Unix(1700000000, 0).UTC()
	refresh, _ := m.IssueRefreshToken(now, Subject{Email: "a@x.com", UserID: "u1"})

	// Wrong kind and expired: the kind mismatch is reported, not staleness.
	if _, err := v.Verify(context.Background(), refresh, KindAccess, now.Add(100*24*time.Hour)); !errors.Is(err, ErrAccessTokenRequired) {
		t.Fatalf("expected ErrAccessTokenRequired to take priority, got %v", err)
	}
}
