package domain

import (
	"time"

	"github.com/google/uuid"
)

// Coupon is a flat discount granted by a promotional flow and scoped to
// merchandise checkout. It lives in the coupon store until a purchase
// applies it, after which it is deleted so it cannot be reused.
type Coupon struct {
	Code        string    `json:"code"`
	Discount    float64   `json:"discount"`
	MinPurchase float64   `json:"min_purchase"`
	OrderID     uuid.UUID `json:"order_id"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// AppliesTo reports whether the coupon discounts a purchase with the given
// subtotal at the given instant. An expired coupon, or a subtotal below the
// minimum purchase threshold, makes the coupon behave as if absent.
func (c *Coupon) AppliesTo(subtotal float64, now time.Time) bool {
	if c == nil {
		return false
	}
	if !now.Before(c.ExpiresAt) {
		return false
	}
	return subtotal >= c.MinPurchase
}
