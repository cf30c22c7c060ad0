package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marquee-live/storefront/internal/checkout"
	"github.com/marquee-live/storefront/internal/config"
	"github.com/marquee-live/storefront/internal/domain"
	"github.com/marquee-live/storefront/internal/observability"
	"github.com/marquee-live/storefront/internal/pricing"
)

type fakeInventory struct {
	tiers []domain.TierRecord
	err   error
}

func (f *fakeInventory) ListTiers(ctx context.Context, eventID uuid.UUID, category domain.TierCategory) ([]domain.TierRecord, error) {
	return f.tiers, f.err
}

type fakeOrderReader struct {
	order *domain.Order
	err   error
}

func (f *fakeOrderReader) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.order, nil
}

type fakeNewsletter struct {
	err    error
	emails []string
}

func (f *fakeNewsletter) SubscribeNewsletter(ctx context.Context, sub domain.NewsletterSubscriber) error {
	if f.err != nil {
		return f.err
	}
	f.emails = append(f.emails, sub.Email)
	return nil
}

type fakeOrderStore struct {
	orders []domain.Order
}

func (f *fakeOrderStore) SubmitOrder(ctx context.Context, customer domain.Customer, order *domain.Order, decs []domain.StockDecrement, event domain.OrderConfirmed) error {
	order.CustomerID = uuid.New()
	f.orders = append(f.orders, *order)
	return nil
}

type nopCouponStore struct{}

func (nopCouponStore) Get(ctx context.Context, key string) (*domain.Coupon, error) { return nil, nil }
func (nopCouponStore) Set(ctx context.Context, key string, c domain.Coupon) error  { return nil }
func (nopCouponStore) Clear(ctx context.Context, key string) error                 { return nil }

func testHandlers(inv *fakeInventory, orders *fakeOrderReader, news *fakeNewsletter, store *fakeOrderStore) *Handlers {
	logger := observability.NewLogger()
	svc := checkout.NewService(store, nopCouponStore{}, nil, logger, checkout.Rates{
		TicketTaxService: pricing.DefaultTaxServiceRate,
		MerchTax:         0.05,
		ShippingFee:      9.99,
	})
	cfg := &config.Config{}
	return NewHandlers(cfg, inv, orders, news, svc, nil, logger)
}

func testRouter(h *Handlers) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/v1/events/{id}/tiers", h.ListTiers)
	r.Post("/v1/checkout/tickets", h.CheckoutTickets)
	r.Post("/v1/checkout/merchandise", h.CheckoutMerchandise)
	r.Get("/v1/orders/{id}", h.GetOrder)
	r.Post("/v1/newsletter", h.SubscribeNewsletter)
	return r
}

func TestListTiers(t *testing.T) {
	eventID := uuid.New()
	inv := &fakeInventory{tiers: []domain.TierRecord{
		{ID: uuid.New(), EventID: eventID, Category: domain.CategoryGeneral, Title: "Regular", Price: 59, AvailableQuantity: 10, Active: true},
		{ID: uuid.New(), EventID: eventID, Category: domain.CategoryGeneral, Title: "Early Bird", Price: 34, AvailableQuantity: 0, Active: false},
	}}
	h := testHandlers(inv, &fakeOrderReader{}, &fakeNewsletter{}, &fakeOrderStore{})

	req := httptest.NewRequest("GET", "/v1/events/"+eventID.String()+"/tiers?category=general", nil)
	rec := httptest.NewRecorder()
	testRouter(h).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Tiers []domain.TierView `json:"tiers"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Tiers, 2)
	assert.Equal(t, "Early Bird", resp.Tiers[0].Title)
	assert.True(t, resp.Tiers[0].IsSoldOut)
	assert.True(t, resp.Tiers[1].IsCurrent)
}

func TestListTiersFallsBackToStaticTiers(t *testing.T) {
	h := testHandlers(&fakeInventory{}, &fakeOrderReader{}, &fakeNewsletter{}, &fakeOrderStore{})

	req := httptest.NewRequest("GET", "/v1/events/"+uuid.NewString()+"/tiers?category=vip", nil)
	rec := httptest.NewRecorder()
	testRouter(h).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Tiers []domain.TierView `json:"tiers"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Tiers, 1)
	assert.Equal(t, "VIP", resp.Tiers[0].Title)
}

func TestCheckoutTickets(t *testing.T) {
	tierID := uuid.New()
	inv := &fakeInventory{tiers: []domain.TierRecord{
		{ID: tierID, Title: "Early Bird", Price: 34, AvailableQuantity: 100, Active: true},
	}}
	store := &fakeOrderStore{}
	h := testHandlers(inv, &fakeOrderReader{}, &fakeNewsletter{}, store)

	body, _ := json.Marshal(map[string]interface{}{
		"customer":             map[string]string{"name": "Ada Fan", "email": "ada@example.com"},
		"event_id":             uuid.New(),
		"category":             "general",
		"quantity":             2,
		"food_service_price":   25,
		"include_food_service": true,
	})
	req := httptest.NewRequest("POST", "/v1/checkout/tickets", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	testRouter(h).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var conf checkout.Confirmation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &conf))
	assert.Equal(t, 118.0, conf.Subtotal)
	assert.InDelta(t, 135.6705, conf.Total, 1e-9)
	require.Len(t, store.orders, 1)
}

func TestCheckoutTicketsNoTierOnSale(t *testing.T) {
	inv := &fakeInventory{tiers: []domain.TierRecord{
		{ID: uuid.New(), Title: "Sold out run", Price: 34, AvailableQuantity: 0, Active: false},
	}}
	h := testHandlers(inv, &fakeOrderReader{}, &fakeNewsletter{}, &fakeOrderStore{})

	body, _ := json.Marshal(map[string]interface{}{
		"customer": map[string]string{"name": "Ada", "email": "a@b.c"},
		"event_id": uuid.New(),
		"quantity": 1,
	})
	req := httptest.NewRequest("POST", "/v1/checkout/tickets", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	testRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCheckoutMerchandise(t *testing.T) {
	store := &fakeOrderStore{}
	h := testHandlers(&fakeInventory{}, &fakeOrderReader{}, &fakeNewsletter{}, store)

	body, _ := json.Marshal(map[string]interface{}{
		"customer": map[string]string{"name": "Ada Fan", "email": "ada@example.com"},
		"items": []map[string]interface{}{
			{"description": "Tour tee", "unit_price": "$20", "quantity": 2},
			{"description": "Poster", "unit_price": 15, "quantity": 1},
		},
		"delivery": "pickup",
	})
	req := httptest.NewRequest("POST", "/v1/checkout/merchandise", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	testRouter(h).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var conf checkout.Confirmation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &conf))
	assert.Equal(t, 55.0, conf.Subtotal)
	assert.InDelta(t, 2.75, conf.Tax, 1e-9)
	assert.Equal(t, 0.0, conf.Shipping)
	assert.InDelta(t, 57.75, conf.Total, 1e-9)
}

func TestCheckoutMerchandiseBadDelivery(t *testing.T) {
	h := testHandlers(&fakeInventory{}, &fakeOrderReader{}, &fakeNewsletter{}, &fakeOrderStore{})

	body, _ := json.Marshal(map[string]interface{}{
		"customer": map[string]string{"name": "Ada", "email": "a@b.c"},
		"items":    []map[string]interface{}{{"description": "Tee", "unit_price": 20, "quantity": 1}},
		"delivery": "teleport",
	})
	req := httptest.NewRequest("POST", "/v1/checkout/merchandise", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	testRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrder(t *testing.T) {
	id := uuid.New()
	reader := &fakeOrderReader{order: &domain.Order{
		ID: id, Status: domain.OrderStatusConfirmed, Kind: domain.OrderMerchandise, TotalAmount: 57.75,
	}}
	h := testHandlers(&fakeInventory{}, reader, &fakeNewsletter{}, &fakeOrderStore{})

	req := httptest.NewRequest("GET", "/v1/orders/"+id.String(), nil)
	rec := httptest.NewRecorder()
	testRouter(h).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "CONFIRMED")
}

func TestGetOrderNotFound(t *testing.T) {
	h := testHandlers(&fakeInventory{}, &fakeOrderReader{err: domain.ErrNotFound}, &fakeNewsletter{}, &fakeOrderStore{})

	req := httptest.NewRequest("GET", "/v1/orders/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	testRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubscribeNewsletter(t *testing.T) {
	news := &fakeNewsletter{}
	h := testHandlers(&fakeInventory{}, &fakeOrderReader{}, news, &fakeOrderStore{})

	body, _ := json.Marshal(map[string]string{"email": "fan@example.com"})
	req := httptest.NewRequest("POST", "/v1/newsletter", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	testRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, []string{"fan@example.com"}, news.emails)

	// Duplicate signups read as success.
	news.err = domain.ErrConflict
	req = httptest.NewRequest("POST", "/v1/newsletter", bytes.NewReader(body))
	rec = httptest.NewRecorder()
	testRouter(h).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
