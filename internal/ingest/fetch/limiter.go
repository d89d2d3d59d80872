package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
)

// UpstreamLimiter adapts redis_rate.Limiter, used elsewhere in this module
// for inbound rate limiting, to cap outbound requests to the upstream feed
// instead. One key is shared across every worker process since the limit
// is upstream-wide, not per-caller.
type UpstreamLimiter struct {
	limiter *redis_rate.Limiter
	key     string
	perSec  int
}

// NewUpstreamLimiter builds a limiter capping requests to perSec per
// second, keyed by a fixed name so all fetcher instances sharing the same
// Redis share the same budget.
func NewUpstreamLimiter(client *redis.Client, perSec int) *UpstreamLimiter {
	return &UpstreamLimiter{
		limiter: redis_rate.NewLimiter(client),
		key:     "ingest:upstream:fetch",
		perSec:  perSec,
	}
}

// Wait blocks until a token is available or ctx is canceled, retrying the
// limiter check after the reset window each time it's denied.
func (u *UpstreamLimiter) Wait(ctx context.Context) error {
	for {
		res, err := u.limiter.Allow(ctx, u.key, redis_rate.PerSecond(u.perSec))
		if err != nil {
			return fmt.Errorf("rate limit check: %w", err)
		}
		if res.Allowed > 0 {
			return nil
		}

		wait := res.RetryAfter
		if wait <= 0 {
			wait = 10 * time.Millisecond
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// NoopLimiter never blocks; used in tests and when rate limiting is
// disabled (e.g. cache-only dry runs).
type NoopLimiter struct{}

func (NoopLimiter) Wait(ctx context.Context) error { return ctx.Err() }
