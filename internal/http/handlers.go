package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/marquee-live/storefront/internal/checkout"
	"github.com/marquee-live/storefront/internal/config"
	"github.com/marquee-live/storefront/internal/domain"
	"github.com/marquee-live/storefront/internal/idempotency"
	"github.com/marquee-live/storefront/internal/observability"
	"github.com/marquee-live/storefront/internal/pricing"
)

// InventoryStore reads tier inventory for the public listing.
type InventoryStore interface {
	ListTiers(ctx context.Context, eventID uuid.UUID, category domain.TierCategory) ([]domain.TierRecord, error)
}

// OrderReader serves order lookups.
type OrderReader interface {
	GetOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, error)
}

// NewsletterStore records newsletter signups.
type NewsletterStore interface {
	SubscribeNewsletter(ctx context.Context, sub domain.NewsletterSubscriber) error
}

type Handlers struct {
	cfg       *config.Config
	inventory InventoryStore
	orders    OrderReader
	news      NewsletterStore
	checkout  *checkout.Service
	idemp     *idempotency.Idempotency
	logger    observability.Logger
}

func NewHandlers(cfg *config.Config, inventory InventoryStore, orders OrderReader, news NewsletterStore, co *checkout.Service, idemp *idempotency.Idempotency, logger observability.Logger) *Handlers {
	return &Handlers{
		cfg:       cfg,
		inventory: inventory,
		orders:    orders,
		news:      news,
		checkout:  co,
		idemp:     idemp,
		logger:    logger,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) []byte {
	data, _ := json.Marshal(v)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
	return data
}

// ListTiers returns the display-ready tier list for one event and category.
func (h *Handlers) ListTiers(w http.ResponseWriter, r *http.Request) {
	eventID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid event id", http.StatusBadRequest)
		return
	}
	category := domain.TierCategory(r.URL.Query().Get("category"))

	records, err := h.inventory.ListTiers(r.Context(), eventID, category)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	views := pricing.SelectTiers(records, categoryDescriptions[category], categoryFeatures[category])
	if len(views) == 0 {
		views = fallbackTiers[category]
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tiers": views})
}

type customerPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (p customerPayload) toDomain() domain.Customer {
	return domain.Customer{
		ID:      uuid.New(),
		Name:    p.Name,
		Email:   p.Email,
		Phone:   p.Phone,
		Address: p.Address,
	}
}

func (h *Handlers) replayIdempotent(w http.ResponseWriter, r *http.Request) (string, bool) {
	key := r.Header.Get("Idempotency-Key")
	if h.idemp == nil {
		return key, false
	}
	existing, err := h.idemp.Get(r.Context(), key)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return key, true
	}
	if existing != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(existing.Status)
		w.Write(existing.Result)
		return key, true
	}
	return key, false
}

func (h *Handlers) CheckoutTickets(w http.ResponseWriter, r *http.Request) {
	key, done := h.replayIdempotent(w, r)
	if done {
		return
	}

	var req struct {
		Customer           customerPayload `json:"customer"`
		EventID            uuid.UUID       `json:"event_id"`
		Category           string          `json:"category"`
		Quantity           int             `json:"quantity"`
		FoodServicePrice   float64         `json:"food_service_price"`
		IncludeFoodService bool            `json:"include_food_service"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	records, err := h.inventory.ListTiers(r.Context(), req.EventID, domain.TierCategory(req.Category))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	tier, ok := pricing.CurrentTier(records)
	if !ok {
		http.Error(w, "no tier on sale", http.StatusConflict)
		return
	}

	conf, err := h.checkout.SubmitTickets(r.Context(), checkout.TicketCheckout{
		Customer:           req.Customer.toDomain(),
		Tier:               tier,
		UnitPrice:          tier.Price,
		Quantity:           req.Quantity,
		FoodServicePrice:   req.FoodServicePrice,
		IncludeFoodService: req.IncludeFoodService,
	})
	if err != nil {
		h.writeCheckoutError(w, err)
		return
	}

	data := writeJSON(w, http.StatusCreated, conf)
	h.storeIdempotent(r, key, data)
}

func (h *Handlers) storeIdempotent(r *http.Request, key string, data []byte) {
	if h.idemp == nil || key == "" {
		return
	}
	h.idemp.Set(r.Context(), key, idempotency.Response{Status: http.StatusCreated, Result: data})
}

func (h *Handlers) CheckoutMerchandise(w http.ResponseWriter, r *http.Request) {
	key, done := h.replayIdempotent(w, r)
	if done {
		return
	}

	var req struct {
		Customer customerPayload `json:"customer"`
		Items    []struct {
			MerchandiseID uuid.UUID `json:"merchandise_id"`
			VariantID     uuid.UUID `json:"variant_id"`
			Description   string    `json:"description"`
			UnitPrice     any       `json:"unit_price"`
			Quantity      int       `json:"quantity"`
		} `json:"items"`
		Delivery string `json:"delivery"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	items := make([]domain.LineItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = domain.LineItem{
			MerchandiseID: it.MerchandiseID,
			VariantID:     it.VariantID,
			Description:   it.Description,
			UnitPrice:     pricing.ParsePrice(it.UnitPrice),
			Quantity:      it.Quantity,
		}
	}

	conf, err := h.checkout.SubmitMerchandise(r.Context(), checkout.MerchandiseCheckout{
		Customer:  req.Customer.toDomain(),
		Items:     items,
		Delivery:  domain.DeliveryMethod(req.Delivery),
		CouponKey: req.Customer.Email,
	})
	if err != nil {
		h.writeCheckoutError(w, err)
		return
	}

	data := writeJSON(w, http.StatusCreated, conf)
	h.storeIdempotent(r, key, data)
}

func (h *Handlers) writeCheckoutError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrSerializationFailure):
		http.Error(w, "sold out or conflicting purchase, try again", http.StatusConflict)
	case errors.Is(err, domain.ErrSubmissionInFlight):
		http.Error(w, "submission already in progress", http.StatusTooManyRequests)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	order, err := h.orders.GetOrder(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   order.Status,
		"kind":     order.Kind,
		"items":    order.Items,
		"subtotal": order.Subtotal,
		"discount": order.Discount,
		"tax":      order.Tax,
		"shipping": order.Shipping,
		"total":    order.TotalAmount,
	})
}

func (h *Handlers) SubscribeNewsletter(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		http.Error(w, "email required", http.StatusBadRequest)
		return
	}

	err := h.news.SubscribeNewsletter(r.Context(), domain.NewsletterSubscriber{ID: uuid.New(), Email: req.Email})
	if errors.Is(err, domain.ErrConflict) {
		// Already subscribed; signup stays idempotent for the caller.
		w.WriteHeader(http.StatusOK)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *Handlers) Readyz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Ready"))
}
