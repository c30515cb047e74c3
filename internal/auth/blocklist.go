package auth

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Blocklist is the revocation denylist: a time-expiring set of jtis.
// Presence means "revoked/used"; absence means "not known to be revoked".
// It is injected into the Verifier so tests can substitute an in-memory
// fake; there is no process-wide client.
type Blocklist interface {
	// Mark inserts the jti with the store's fixed TTL. Idempotent: marking
	// the same jti twice has the same effect as once, so retries after a
	// cancelled request are safe.
	Mark(ctx context.Context, jti string) error

	// IsMarked is a point-in-time membership test. An error means the store
	// could not be reached; callers must fail closed, never treat it as
	// "not revoked".
	IsMarked(ctx context.Context, jti string) (bool, error)
}

const blocklistKeyPrefix = "token_blocklist:"

// RedisBlocklist stores entries as SET key "" EX ttl / GET key.
// The TTL is fixed at construction and must cover the longest token
// lifetime (enforced at config validation).
type RedisBlocklist struct {
	rdb redis.UniversalClient
	ttl time.Duration
}

func NewRedisBlocklist(rdb redis.UniversalClient, ttl time.Duration) (*RedisBlocklist, error) {
	if rdb == nil {
		return nil, errors.New("redis client is required")
	}
	if ttl <= 0 {
		return nil, errors.New("blocklist ttl must be > 0")
	}
	return &RedisBlocklist{rdb: rdb, ttl: ttl}, nil
}

func (b *RedisBlocklist) Mark(ctx context.Context, jti string) error {
	if jti == "" {
		return errors.New("jti is required")
	}
	return b.rdb.Set(ctx, blocklistKeyPrefix+jti, "", b.ttl).Err()
}

func (b *RedisBlocklist) IsMarked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	_, err := b.rdb.Get(ctx, blocklistKeyPrefix+jti).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
