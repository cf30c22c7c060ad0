package pricing

import (
	"time"

	"github.com/marquee-live/storefront/internal/domain"
)

// DefaultTaxServiceRate is the composite sales-tax-plus-service-fee rate
// applied to ticket checkouts. Kept as a configuration default rather than
// an inline literal; config.Load reads TAX_SERVICE_RATE and falls back to
// this value.
const DefaultTaxServiceRate = 0.14975

// TicketTotals is the financial summary of a ticket checkout.
type TicketTotals struct {
	Subtotal   float64
	AddOnTotal float64
	Tax        float64
	Total      float64
}

// MerchandiseTotals is the financial summary of a merchandise checkout.
type MerchandiseTotals struct {
	Subtotal float64
	Discount float64
	Tax      float64
	Shipping float64
	Total    float64
}

// ComputeTicketTotals prices a ticket order: unit price times quantity, an
// optional per-ticket food-service add-on, then the composite tax/service
// rate on the whole base. NaN operands are coerced to 0 first, so a bad
// upstream price yields a zero line rather than a NaN total.
func ComputeTicketTotals(unitPrice float64, quantity int, addOnPrice float64, includeAddOn bool, rate float64) TicketTotals {
	qty := float64(quantity)
	subtotal := orZero(unitPrice) * qty

	addOnTotal := 0.0
	if includeAddOn {
		addOnTotal = orZero(addOnPrice) * qty
	}

	base := subtotal + addOnTotal
	tax := base * orZero(rate)

	return TicketTotals{
		Subtotal:   subtotal,
		AddOnTotal: addOnTotal,
		Tax:        tax,
		Total:      base + tax,
	}
}

// ComputeConfirmationTotals replays the pricing of a committed order from
// the raw inputs recorded in its confirmation event. The discount is already
// resolved to an absolute amount and shipping to a final fee, so the result
// matches what the checkout computed for both order kinds.
func ComputeConfirmationTotals(items []domain.OrderItem, discount, taxRate, shipping float64) MerchandiseTotals {
	subtotal := 0.0
	for _, item := range items {
		subtotal += orZero(item.UnitPrice) * float64(item.Quantity)
	}

	discounted := subtotal - orZero(discount)
	tax := discounted * orZero(taxRate)

	return MerchandiseTotals{
		Subtotal: subtotal,
		Discount: orZero(discount),
		Tax:      tax,
		Shipping: orZero(shipping),
		Total:    discounted + tax + orZero(shipping),
	}
}

// ComputeMerchandiseTotals prices a merchandise cart. The coupon, when it
// applies (subtotal at or above its minimum purchase, not yet expired),
// reduces the subtotal before tax; shipping is charged only for the ship
// delivery method. The tax rate comes from configuration rather than being
// hardcoded here.
func ComputeMerchandiseTotals(items []domain.LineItem, delivery domain.DeliveryMethod, shippingFee, taxRate float64, coupon *domain.Coupon, now time.Time) MerchandiseTotals {
	subtotal := 0.0
	for _, item := range items {
		subtotal += orZero(item.UnitPrice) * float64(item.Quantity)
	}

	discount := 0.0
	if coupon.AppliesTo(subtotal, now) {
		discount = orZero(coupon.Discount)
	}

	discounted := subtotal - discount
	tax := discounted * orZero(taxRate)

	shipping := 0.0
	if delivery == domain.DeliveryShip {
		shipping = orZero(shippingFee)
	}

	return MerchandiseTotals{
		Subtotal: subtotal,
		Discount: discount,
		Tax:      tax,
		Shipping: shipping,
		Total:    discounted + tax + shipping,
	}
}
