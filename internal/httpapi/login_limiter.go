package httpapi

import (
	"context"
	"errors"
	"strings"
	"time"

	"bookly/pkg/utils"

	"github.com/redis/go-redis/v9"
)

const loginFailureKeyPrefix = "login_failures:"

// LoginLimiter throttles credential guessing with a fixed-window failure
// counter per email. Redis is the shared source of truth so the cap holds
// across API instances.
type LoginLimiter struct {
	rdb         redis.UniversalClient
	maxFailures int
	window      time.Duration
}

func NewLoginLimiter(rdb redis.UniversalClient, maxFailures int, window time.Duration) (*LoginLimiter, error) {
	if rdb == nil {
		return nil, errors.New("redis client is required")
	}
	if maxFailures <= 0 {
		return nil, errors.New("max failures must be > 0")
	}
	if window <= 0 {
		return nil, errors.New("window must be > 0")
	}
	return &LoginLimiter{rdb: rdb, maxFailures: maxFailures, window: window}, nil
}

func (l *LoginLimiter) key(email string) string {
	return loginFailureKeyPrefix + strings.ToLower(strings.TrimSpace(email))
}

// Blocked reports whether the email has reached the failure cap in the
// current window.
func (l *LoginLimiter) Blocked(ctx context.Context, email string) (bool, error) {
	n, err := l.rdb.Get(ctx, l.key(email)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return n >= int64(l.maxFailures), nil
}

// Failure records a failed attempt and reports the count within the window.
func (l *LoginLimiter) Failure(ctx context.Context, email string) (int64, error) {
	return utils.RecordFailure(ctx, l.rdb, l.key(email), l.window)
}

// Reset clears the counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, email string) error {
	return utils.ClearFailures(ctx, l.rdb, l.key(email))
}
