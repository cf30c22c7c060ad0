package idempotency

import (
	"context"
	"time"

	redisadapter "github.com/marquee-live/storefront/internal/adapters/redis"
)

// Idempotency caches checkout responses per Idempotency-Key so a retried
// submission replays the stored outcome instead of creating a second order.
type Idempotency struct {
	redis *redisadapter.Idempotency
	ttl   time.Duration
}

func NewIdempotency(redis *redisadapter.Idempotency, ttl time.Duration) *Idempotency {
	return &Idempotency{redis: redis, ttl: ttl}
}

type Response struct {
	Status int
	Result []byte
}

func (i *Idempotency) Get(ctx context.Context, key string) (*Response, error) {
	resp, err := i.redis.Get(ctx, key)
	if err != nil || resp == nil {
		return nil, err
	}
	return &Response{Status: resp.Status, Result: resp.Result}, nil
}

func (i *Idempotency) Set(ctx context.Context, key string, resp Response) error {
	return i.redis.Set(ctx, key, redisadapter.IdempResponse{Status: resp.Status, Result: resp.Result}, i.ttl)
}
