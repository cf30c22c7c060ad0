package domain

import (
	"time"

	"github.com/google/uuid"
)

// TierCategory is the ticket-type bucket a tier belongs to.
type TierCategory string

const (
	CategoryGeneral    TierCategory = "general"
	CategoryVIP        TierCategory = "vip"
	CategoryGroup      TierCategory = "group"
	CategoryLastMinute TierCategory = "last-minute"
)

// TierRecord is one purchasable tier of one ticket type for one event.
// Records are created and advanced by the back-office; the pricing core
// only reads them.
type TierRecord struct {
	ID                uuid.UUID
	EventID           uuid.UUID
	Category          TierCategory
	Title             string
	Price             float64
	AvailableQuantity int
	Active            bool
}

// TierView is the display-ready projection of a TierRecord. Recomputed on
// every inventory fetch, never persisted.
type TierView struct {
	Title       string
	Description string
	Price       string
	TicketsLeft int
	IsCurrent   bool
	IsSoldOut   bool
	IsDisabled  bool
	Features    []string
}

type DeliveryMethod string

const (
	DeliveryShip   DeliveryMethod = "ship"
	DeliveryPickup DeliveryMethod = "pickup"
)

// LineItem is one cart line in a merchandise checkout.
type LineItem struct {
	MerchandiseID uuid.UUID
	VariantID     uuid.UUID
	Description   string
	UnitPrice     float64
	Quantity      int
}

type OrderKind string

const (
	OrderTickets     OrderKind = "tickets"
	OrderMerchandise OrderKind = "merchandise"
)

type Order struct {
	ID          uuid.UUID
	CustomerID  uuid.UUID
	Kind        OrderKind
	Status      string
	Subtotal    float64
	Discount    float64
	Tax         float64
	Shipping    float64
	TotalAmount float64
	Delivery    DeliveryMethod
	CouponCode  string
	Items       []OrderItem
	CreatedAt   time.Time
}

type OrderItem struct {
	Description string
	UnitPrice   float64
	Quantity    int
}

type Customer struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
}

type Merchandise struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       float64
	CreatedAt   time.Time
}

type MerchandiseVariant struct {
	ID            uuid.UUID
	MerchandiseID uuid.UUID
	Size          string
	Color         string
	Stock         int
}

type NewsletterSubscriber struct {
	ID           uuid.UUID
	Email        string
	SubscribedAt time.Time
}
