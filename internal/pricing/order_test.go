package pricing

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/marquee-live/storefront/internal/domain"
)

func TestComputeTicketTotals(t *testing.T) {
	totals := ComputeTicketTotals(34, 2, 25, true, DefaultTaxServiceRate)

	assert.Equal(t, 68.0, totals.Subtotal)
	assert.Equal(t, 50.0, totals.AddOnTotal)
	assert.InDelta(t, 17.6705, totals.Tax, 1e-9)
	assert.InDelta(t, 135.6705, totals.Total, 1e-9)
}

func TestComputeTicketTotalsWithoutAddOn(t *testing.T) {
	totals := ComputeTicketTotals(50, 3, 25, false, DefaultTaxServiceRate)

	assert.Equal(t, 150.0, totals.Subtotal)
	assert.Equal(t, 0.0, totals.AddOnTotal)
	assert.InDelta(t, 150*DefaultTaxServiceRate, totals.Tax, 1e-9)
}

func TestComputeTicketTotalsCoercesNaN(t *testing.T) {
	totals := ComputeTicketTotals(math.NaN(), 3, 10, false, DefaultTaxServiceRate)

	assert.Equal(t, 0.0, totals.Subtotal)
	assert.Equal(t, 0.0, totals.Total)
	assert.False(t, math.IsNaN(totals.Total))

	totals = ComputeTicketTotals(20, 2, math.NaN(), true, DefaultTaxServiceRate)
	assert.Equal(t, 40.0, totals.Subtotal)
	assert.Equal(t, 0.0, totals.AddOnTotal)
	assert.False(t, math.IsNaN(totals.Total))
}

func TestComputeMerchandiseTotalsPickup(t *testing.T) {
	items := []domain.LineItem{
		{Description: "Tour tee", UnitPrice: 20, Quantity: 2},
		{Description: "Poster", UnitPrice: 15, Quantity: 1},
	}

	totals := ComputeMerchandiseTotals(items, domain.DeliveryPickup, 9.99, 0.05, nil, time.Now())

	assert.Equal(t, 55.0, totals.Subtotal)
	assert.Equal(t, 0.0, totals.Discount)
	assert.InDelta(t, 2.75, totals.Tax, 1e-9)
	assert.Equal(t, 0.0, totals.Shipping)
	assert.InDelta(t, 57.75, totals.Total, 1e-9)
}

func TestComputeMerchandiseTotalsShipping(t *testing.T) {
	items := []domain.LineItem{{UnitPrice: 30, Quantity: 1}}

	totals := ComputeMerchandiseTotals(items, domain.DeliveryShip, 9.99, 0.05, nil, time.Now())

	assert.Equal(t, 9.99, totals.Shipping)
	assert.InDelta(t, 30+30*0.05+9.99, totals.Total, 1e-9)
}

func TestComputeMerchandiseTotalsCoupon(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	items := []domain.LineItem{{UnitPrice: 40, Quantity: 2}}

	coupon := &domain.Coupon{
		Code:        "WELCOME10",
		Discount:    10,
		MinPurchase: 50,
		ExpiresAt:   now.Add(24 * time.Hour),
	}

	totals := ComputeMerchandiseTotals(items, domain.DeliveryPickup, 0, 0.05, coupon, now)
	assert.Equal(t, 10.0, totals.Discount)
	// Discount applies before tax.
	assert.InDelta(t, 70*0.05, totals.Tax, 1e-9)
	assert.InDelta(t, 70+70*0.05, totals.Total, 1e-9)
}

func TestComputeMerchandiseTotalsCouponBelowMinimum(t *testing.T) {
	now := time.Now()
	items := []domain.LineItem{{UnitPrice: 10, Quantity: 1}}

	coupon := &domain.Coupon{Discount: 5, MinPurchase: 50, ExpiresAt: now.Add(time.Hour)}

	totals := ComputeMerchandiseTotals(items, domain.DeliveryPickup, 0, 0.05, coupon, now)
	assert.Equal(t, 0.0, totals.Discount)
}

func TestComputeMerchandiseTotalsCouponExpired(t *testing.T) {
	now := time.Now()
	items := []domain.LineItem{{UnitPrice: 100, Quantity: 1}}

	coupon := &domain.Coupon{Discount: 5, MinPurchase: 50, ExpiresAt: now.Add(-time.Minute)}

	totals := ComputeMerchandiseTotals(items, domain.DeliveryPickup, 0, 0.05, coupon, now)
	assert.Equal(t, 0.0, totals.Discount)

	// Expiry boundary: a coupon expiring exactly now is already dead.
	coupon.ExpiresAt = now
	totals = ComputeMerchandiseTotals(items, domain.DeliveryPickup, 0, 0.05, coupon, now)
	assert.Equal(t, 0.0, totals.Discount)
}

func TestComputeMerchandiseTotalsNaNLine(t *testing.T) {
	items := []domain.LineItem{
		{UnitPrice: math.NaN(), Quantity: 3},
		{UnitPrice: 10, Quantity: 1},
	}
	totals := ComputeMerchandiseTotals(items, domain.DeliveryPickup, 0, 0.05, nil, time.Now())
	assert.Equal(t, 10.0, totals.Subtotal)
	assert.False(t, math.IsNaN(totals.Total))
}

func TestComputeConfirmationTotalsMatchesTicketCheckout(t *testing.T) {
	checkout := ComputeTicketTotals(34, 2, 25, true, DefaultTaxServiceRate)

	items := []domain.OrderItem{
		{Description: "Early Bird", UnitPrice: 34, Quantity: 2},
		{Description: "Food service", UnitPrice: 25, Quantity: 2},
	}
	replay := ComputeConfirmationTotals(items, 0, DefaultTaxServiceRate, 0)

	assert.InDelta(t, checkout.Total, replay.Total, 1e-9)
	assert.InDelta(t, checkout.Tax, replay.Tax, 1e-9)
	assert.Equal(t, checkout.Subtotal+checkout.AddOnTotal, replay.Subtotal)
}

func TestComputeConfirmationTotalsMatchesMerchandiseCheckout(t *testing.T) {
	now := time.Now()
	lines := []domain.LineItem{
		{Description: "Tour tee", UnitPrice: 20, Quantity: 2},
		{Description: "Poster", UnitPrice: 40, Quantity: 1},
	}
	coupon := &domain.Coupon{Discount: 10, MinPurchase: 50, ExpiresAt: now.Add(time.Hour)}
	checkout := ComputeMerchandiseTotals(lines, domain.DeliveryShip, 9.99, 0.05, coupon, now)

	items := []domain.OrderItem{
		{Description: "Tour tee", UnitPrice: 20, Quantity: 2},
		{Description: "Poster", UnitPrice: 40, Quantity: 1},
	}
	replay := ComputeConfirmationTotals(items, checkout.Discount, 0.05, checkout.Shipping)

	assert.InDelta(t, checkout.Total, replay.Total, 1e-9)
	assert.Equal(t, checkout.Subtotal, replay.Subtotal)
	assert.Equal(t, checkout.Discount, replay.Discount)
	assert.InDelta(t, checkout.Tax, replay.Tax, 1e-9)
	assert.Equal(t, checkout.Shipping, replay.Shipping)
}
