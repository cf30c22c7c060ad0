// Package checkout orchestrates order submission: validation, total
// computation through the pricing core, atomic persistence, coupon
// consumption and the confirmation outbox event.
package checkout

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/marquee-live/storefront/internal/domain"
	"github.com/marquee-live/storefront/internal/observability"
	"github.com/marquee-live/storefront/internal/pricing"
)

// OrderStore persists a checkout atomically. Implemented by the postgres
// repository.
type OrderStore interface {
	SubmitOrder(ctx context.Context, customer domain.Customer, order *domain.Order, decrements []domain.StockDecrement, event domain.OrderConfirmed) error
}

// CouponStore is the injected coupon dependency: a read-then-conditionally-
// delete key-value record, one coupon per customer key.
type CouponStore interface {
	Get(ctx context.Context, customerKey string) (*domain.Coupon, error)
	Set(ctx context.Context, customerKey string, c domain.Coupon) error
	Clear(ctx context.Context, customerKey string) error
}

// Auditor records committed orders; failures are advisory only.
type Auditor interface {
	LogOrder(ctx context.Context, order domain.Order) error
}

type Rates struct {
	TicketTaxService float64
	MerchTax         float64
	ShippingFee      float64
}

type Service struct {
	orders  OrderStore
	coupons CouponStore
	audit   Auditor
	logger  observability.Logger
	rates   Rates

	// now is swapped in tests to pin coupon expiry.
	now func() time.Time
}

func NewService(orders OrderStore, coupons CouponStore, audit Auditor, logger observability.Logger, rates Rates) *Service {
	return &Service{
		orders:  orders,
		coupons: coupons,
		audit:   audit,
		logger:  logger,
		rates:   rates,
		now:     time.Now,
	}
}

// TicketCheckout is the collected ticket checkout form. Tier is the
// resolved current tier for the requested category; UnitPrice is the raw
// price representation from the listing, canonicalized here.
type TicketCheckout struct {
	Customer           domain.Customer
	Tier               domain.TierRecord
	UnitPrice          any
	Quantity           int
	FoodServicePrice   float64
	IncludeFoodService bool
}

// MerchandiseCheckout is the collected merchandise checkout form.
type MerchandiseCheckout struct {
	Customer  domain.Customer
	Items     []domain.LineItem
	Delivery  domain.DeliveryMethod
	CouponKey string
}

// Confirmation is the terminal result of a successful submission.
type Confirmation struct {
	OrderID  string
	Subtotal float64
	Discount float64
	Tax      float64
	Shipping float64
	Total    float64
}

const (
	minQuantity = 1
	maxQuantity = 10
)

func (s *Service) SubmitTickets(ctx context.Context, req TicketCheckout) (*Confirmation, error) {
	if err := validateCustomer(req.Customer); err != nil {
		return nil, err
	}
	if req.Quantity < minQuantity || req.Quantity > maxQuantity {
		return nil, errors.Wrapf(domain.ErrInvalidInput, "quantity %d out of range", req.Quantity)
	}

	unitPrice := pricing.ParsePrice(req.UnitPrice)
	totals := pricing.ComputeTicketTotals(unitPrice, req.Quantity, req.FoodServicePrice, req.IncludeFoodService, s.rates.TicketTaxService)

	items := []domain.OrderItem{
		{Description: req.Tier.Title, UnitPrice: unitPrice, Quantity: req.Quantity},
	}
	if req.IncludeFoodService {
		items = append(items, domain.OrderItem{Description: "Food service", UnitPrice: req.FoodServicePrice, Quantity: req.Quantity})
	}

	order := domain.NewOrder(req.Customer.ID, domain.OrderTickets, items)
	order.Status = domain.OrderStatusConfirmed
	order.Subtotal = totals.Subtotal + totals.AddOnTotal
	order.Tax = totals.Tax
	order.TotalAmount = totals.Total

	event := domain.OrderConfirmed{
		Kind:           domain.OrderTickets,
		RecipientName:  req.Customer.Name,
		RecipientEmail: req.Customer.Email,
		Items:          items,
		TaxRate:        s.rates.TicketTaxService,
	}

	decrements := []domain.StockDecrement{{ID: req.Tier.ID, Quantity: req.Quantity}}
	if err := s.orders.SubmitOrder(ctx, req.Customer, &order, decrements, event); err != nil {
		observability.CheckoutsTotal.WithLabelValues(string(domain.OrderTickets), "failed").Inc()
		return nil, err
	}

	s.afterCommit(ctx, order, "")
	observability.CheckoutsTotal.WithLabelValues(string(domain.OrderTickets), "succeeded").Inc()

	return &Confirmation{
		OrderID:  order.ID.String(),
		Subtotal: order.Subtotal,
		Tax:      order.Tax,
		Total:    order.TotalAmount,
	}, nil
}

func (s *Service) SubmitMerchandise(ctx context.Context, req MerchandiseCheckout) (*Confirmation, error) {
	if err := validateCustomer(req.Customer); err != nil {
		return nil, err
	}
	if len(req.Items) == 0 {
		return nil, errors.Wrap(domain.ErrInvalidInput, "empty cart")
	}
	if req.Delivery != domain.DeliveryShip && req.Delivery != domain.DeliveryPickup {
		return nil, errors.Wrapf(domain.ErrInvalidInput, "unknown delivery method %q", req.Delivery)
	}

	coupon, err := s.coupons.Get(ctx, req.CouponKey)
	if err != nil {
		// A broken coupon store must not block a purchase; the coupon is
		// simply treated as absent.
		s.logger.Warn("coupon lookup failed: ", err)
		coupon = nil
	}

	now := s.now()
	totals := pricing.ComputeMerchandiseTotals(req.Items, req.Delivery, s.rates.ShippingFee, s.rates.MerchTax, coupon, now)

	items := make([]domain.OrderItem, len(req.Items))
	decrements := make([]domain.StockDecrement, 0, len(req.Items))
	for i, line := range req.Items {
		items[i] = domain.OrderItem{Description: line.Description, UnitPrice: line.UnitPrice, Quantity: line.Quantity}
		if line.VariantID != uuid.Nil {
			decrements = append(decrements, domain.StockDecrement{ID: line.VariantID, Quantity: line.Quantity, Variant: true})
		}
	}

	order := domain.NewOrder(req.Customer.ID, domain.OrderMerchandise, items)
	order.Status = domain.OrderStatusConfirmed
	order.Subtotal = totals.Subtotal
	order.Discount = totals.Discount
	order.Tax = totals.Tax
	order.Shipping = totals.Shipping
	order.TotalAmount = totals.Total
	order.Delivery = req.Delivery

	couponApplied := totals.Discount > 0
	if couponApplied {
		order.CouponCode = coupon.Code
	}

	event := domain.OrderConfirmed{
		Kind:           domain.OrderMerchandise,
		RecipientName:  req.Customer.Name,
		RecipientEmail: req.Customer.Email,
		Address:        req.Customer.Address,
		Delivery:       req.Delivery,
		Items:          items,
		Discount:       totals.Discount,
		TaxRate:        s.rates.MerchTax,
		ShippingFee:    totals.Shipping,
		CouponCode:     order.CouponCode,
	}

	if err := s.orders.SubmitOrder(ctx, req.Customer, &order, decrements, event); err != nil {
		observability.CheckoutsTotal.WithLabelValues(string(domain.OrderMerchandise), "failed").Inc()
		return nil, err
	}

	couponKey := ""
	if couponApplied {
		couponKey = req.CouponKey
	}
	s.afterCommit(ctx, order, couponKey)
	observability.CheckoutsTotal.WithLabelValues(string(domain.OrderMerchandise), "succeeded").Inc()

	return &Confirmation{
		OrderID:  order.ID.String(),
		Subtotal: order.Subtotal,
		Discount: order.Discount,
		Tax:      order.Tax,
		Shipping: order.Shipping,
		Total:    order.TotalAmount,
	}, nil
}

// afterCommit runs the side effects of a committed order. An applied coupon
// is deleted so it cannot be reused; the audit entry is advisory. Neither
// can reverse the order at this point, so errors are logged and dropped.
func (s *Service) afterCommit(ctx context.Context, order domain.Order, couponKey string) {
	g, gctx := errgroup.WithContext(ctx)
	if couponKey != "" {
		g.Go(func() error {
			if err := s.coupons.Clear(gctx, couponKey); err != nil {
				return errors.Wrap(err, "clear coupon")
			}
			observability.CouponsApplied.Inc()
			return nil
		})
	}
	if s.audit != nil {
		g.Go(func() error {
			return s.audit.LogOrder(gctx, order)
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.WithField("order_id", order.ID.String()).Warn("post-commit side effect failed: ", err)
	}
}

func validateCustomer(c domain.Customer) error {
	if strings.TrimSpace(c.Name) == "" || strings.TrimSpace(c.Email) == "" {
		return errors.Wrap(domain.ErrInvalidInput, "customer name and email required")
	}
	return nil
}
