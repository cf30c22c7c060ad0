package domain

import "github.com/google/uuid"

// StockDecrement is one inventory deduction performed inside the checkout
// transaction. Variant selects merchandise-variant stock over tier stock.
type StockDecrement struct {
	ID       uuid.UUID
	Quantity int
	Variant  bool
}

// OrderConfirmed is the outbox event emitted when a checkout commits. It
// carries the raw pricing inputs, not the computed totals: the email worker
// re-derives the amounts with the same pricing code the checkout used, which
// keeps the confirmation mail consistent with what the customer saw.
type OrderConfirmed struct {
	OrderID        uuid.UUID      `json:"order_id"`
	Kind           OrderKind      `json:"kind"`
	RecipientName  string         `json:"recipient_name"`
	RecipientEmail string         `json:"recipient_email"`
	Address        string         `json:"address"`
	Delivery       DeliveryMethod `json:"delivery"`
	Items          []OrderItem    `json:"items"`
	Discount       float64        `json:"discount"`
	TaxRate        float64        `json:"tax_rate"`
	ShippingFee    float64        `json:"shipping_fee"`
	CouponCode     string         `json:"coupon_code,omitempty"`
}
