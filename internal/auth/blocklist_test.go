package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func testBlocklist(t *testing.T, ttl time.Duration) (*RedisBlocklist, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	bl, err := NewRedisBlocklist(rdb, ttl)
	if err != nil {
		t.Fatalf("blocklist: %v", err)
	}
	return bl, mr
}

func TestBlocklistMarkAndLookup(t *testing.T) {
	bl, _ := testBlocklist(t, time.Hour)
	ctx := context.Background()

	marked, err := bl.IsMarked(ctx, "jti-1")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if marked {
		t.Fatalf("unmarked jti reported as revoked")
	}

	if err := bl.Mark(ctx, "jti-1"); err != nil {
		t.Fatalf("mark: %v", err)
	}

	marked, err = bl.IsMarked(ctx, "jti-1")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !marked {
		t.Fatalf("marked jti not reported as revoked")
	}
}

func TestBlocklistEntryExpires(t *testing.T) {
	bl, mr := testBlocklist(t, time.Hour)
	ctx := context.Background()

	if err := bl.Mark(ctx, "jti-1"); err != nil {
		t.Fatalf("mark: %v", err)
	}

	mr.FastForward(59 * time.Minute)
	if marked, _ := bl.IsMarked(ctx, "jti-1"); !marked {
		t.Fatalf("entry expired before its TTL")
	}

	mr.FastForward(2 * time.Minute)
	if marked, _ := bl.IsMarked(ctx, "jti-1"); marked {
		t.Fatalf("entry survived its TTL")
	}
}

func TestBlocklistMarkIsIdempotent(t *testing.T) {
	bl, _ := testBlocklist(t, time.Hour)
	ctx := context.Background()

	// Setting the same key twice has the same effect as once, so retries
	// after a cancelled request are safe.
	if err := bl.Mark(ctx, "jti-1"); err != nil {
		t.Fatalf("mark: %v", err)
	}
	if err := bl.Mark(ctx, "jti-1"); err != nil {
		t.Fatalf("second mark: %v", err)
	}
	if marked, _ := bl.IsMarked(ctx, "jti-1"); !marked {
		t.Fatalf("marked jti not reported as revoked")
	}
}

func TestBlocklistUnreachableStoreReturnsError(t *testing.T) {
	bl, mr := testBlocklist(t, time.Hour)
	ctx := context.Background()
	mr.Close()

	if _, err := bl.IsMarked(ctx, "jti-1"); err == nil {
		t.Fatalf("expected an error from an unreachable store")
	}
	if err := bl.Mark(ctx, "jti-1"); err == nil {
		t.Fatalf("expected an error from an unreachable store")
	}
}
