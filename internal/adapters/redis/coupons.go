package redis

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/marquee-live/storefront/internal/domain"
)

// CouponStore keeps the per-customer promotional coupon. Values are
// JSON-serialized; a missing key means no coupon, never an error. Clear is
// called after a successful purchase that applied the coupon, so the grant
// is single-use.
type CouponStore struct {
	client *redis.Client
}

func NewCouponStore(client *redis.Client) *CouponStore {
	return &CouponStore{client: client}
}

func (s *CouponStore) Get(ctx context.Context, customerKey string) (*domain.Coupon, error) {
	val, err := s.client.Get(ctx, "coupon:"+customerKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var c domain.Coupon
	if err := json.Unmarshal(val, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CouponStore) Set(ctx context.Context, customerKey string, c domain.Coupon) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	ttl := c.ExpiresAt.Sub(nowFunc())
	if ttl <= 0 {
		return domain.ErrInvalidInput
	}
	return s.client.Set(ctx, "coupon:"+customerKey, data, ttl).Err()
}

func (s *CouponStore) Clear(ctx context.Context, customerKey string) error {
	return s.client.Del(ctx, "coupon:"+customerKey).Err()
}
