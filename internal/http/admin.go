package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/marquee-live/storefront/internal/domain"
	"github.com/marquee-live/storefront/internal/observability"
)

// AdminStore is the back-office persistence surface; the postgres repository
// implements it.
type AdminStore interface {
	ListCustomers(ctx context.Context, limit int) ([]domain.Customer, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	CreateCustomer(ctx context.Context, c domain.Customer) error
	UpdateCustomer(ctx context.Context, c domain.Customer) error
	DeleteCustomer(ctx context.Context, id uuid.UUID) error

	ListOrders(ctx context.Context, status string, limit int) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status string) error

	ListTiers(ctx context.Context, eventID uuid.UUID, category domain.TierCategory) ([]domain.TierRecord, error)
	CreateTier(ctx context.Context, rec domain.TierRecord) error
	UpdateTier(ctx context.Context, rec domain.TierRecord) error
	DeleteTier(ctx context.Context, id uuid.UUID) error

	ListMerchandise(ctx context.Context) ([]domain.Merchandise, error)
	GetMerchandise(ctx context.Context, id uuid.UUID) (*domain.Merchandise, []domain.MerchandiseVariant, error)
	CreateMerchandise(ctx context.Context, m domain.Merchandise) error
	UpdateMerchandise(ctx context.Context, m domain.Merchandise) error
	DeleteMerchandise(ctx context.Context, id uuid.UUID) error
	CreateVariant(ctx context.Context, v domain.MerchandiseVariant) error
}

// AdminAuditor mirrors back-office mutations into the audit log.
type AdminAuditor interface {
	LogAdminAction(ctx context.Context, action, table string, recordID uuid.UUID) error
}

// CouponIssuer grants a coupon to one customer key.
type CouponIssuer interface {
	Set(ctx context.Context, customerKey string, c domain.Coupon) error
}

type AdminHandlers struct {
	store   AdminStore
	coupons CouponIssuer
	audit   AdminAuditor
	logger  observability.Logger
}

func NewAdminHandlers(store AdminStore, coupons CouponIssuer, audit AdminAuditor, logger observability.Logger) *AdminHandlers {
	return &AdminHandlers{store: store, coupons: coupons, audit: audit, logger: logger}
}

func (h *AdminHandlers) auditAction(ctx context.Context, action, table string, id uuid.UUID) {
	if h.audit == nil {
		return
	}
	if err := h.audit.LogAdminAction(ctx, action, table, id); err != nil {
		h.logger.Warn("audit log failed: ", err)
	}
}

func (h *AdminHandlers) writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrConflict):
		http.Error(w, "conflict", http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func queryLimit(r *http.Request) int {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return limit
}

func (h *AdminHandlers) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.store.ListCustomers(r.Context(), queryLimit(r))
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"customers": customers})
}

func (h *AdminHandlers) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	c, err := h.store.GetCustomer(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *AdminHandlers) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req customerPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	c := req.toDomain()
	if err := h.store.CreateCustomer(r.Context(), c); err != nil {
		h.writeStoreError(w, err)
		return
	}
	h.auditAction(r.Context(), "admin.customer.created", "customers", c.ID)
	writeJSON(w, http.StatusCreated, c)
}

func (h *AdminHandlers) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var req customerPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	c := req.toDomain()
	c.ID = id
	if err := h.store.UpdateCustomer(r.Context(), c); err != nil {
		h.writeStoreError(w, err)
		return
	}
	h.auditAction(r.Context(), "admin.customer.updated", "customers", id)
	writeJSON(w, http.StatusOK, c)
}

func (h *AdminHandlers) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := h.store.DeleteCustomer(r.Context(), id); err != nil {
		h.writeStoreError(w, err)
		return
	}
	h.auditAction(r.Context(), "admin.customer.deleted", "customers", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandlers) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.store.ListOrders(r.Context(), r.URL.Query().Get("status"), queryLimit(r))
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}

func (h *AdminHandlers) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
		http.Error(w, "status required", http.StatusBadRequest)
		return
	}
	if err := h.store.UpdateOrderStatus(r.Context(), id, req.Status); err != nil {
		h.writeStoreError(w, err)
		return
	}
	h.auditAction(r.Context(), "admin.order.status", "orders", id)
	w.WriteHeader(http.StatusOK)
}

type tierPayload struct {
	EventID           uuid.UUID `json:"event_id"`
	Category          string    `json:"category"`
	Title             string    `json:"title"`
	Price             float64   `json:"price"`
	AvailableQuantity int       `json:"available_quantity"`
	Active            bool      `json:"active"`
}

func (h *AdminHandlers) ListTiers(w http.ResponseWriter, r *http.Request) {
	eventID, err := uuid.Parse(r.URL.Query().Get("event_id"))
	if err != nil {
		http.Error(w, "event_id required", http.StatusBadRequest)
		return
	}
	records, err := h.store.ListTiers(r.Context(), eventID, domain.TierCategory(r.URL.Query().Get("category")))
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tiers": records})
}

func (h *AdminHandlers) CreateTier(w http.ResponseWriter, r *http.Request) {
	var req tierPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.AvailableQuantity < 0 {
		http.Error(w, "available_quantity must not be negative", http.StatusBadRequest)
		return
	}
	rec := domain.TierRecord{
		ID:                uuid.New(),
		EventID:           req.EventID,
		Category:          domain.TierCategory(req.Category),
		Title:             req.Title,
		Price:             req.Price,
		AvailableQuantity: req.AvailableQuantity,
		Active:            req.Active,
	}
	if err := h.store.CreateTier(r.Context(), rec); err != nil {
		h.writeStoreError(w, err)
		return
	}
	h.auditAction(r.Context(), "admin.tier.created", "event_tickets", rec.ID)
	writeJSON(w, http.StatusCreated, rec)
}

func (h *AdminHandlers) UpdateTier(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var req tierPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.AvailableQuantity < 0 {
		http.Error(w, "available_quantity must not be negative", http.StatusBadRequest)
		return
	}
	rec := domain.TierRecord{
		ID:                id,
		Title:             req.Title,
		Price:             req.Price,
		AvailableQuantity: req.AvailableQuantity,
		Active:            req.Active,
	}
	if err := h.store.UpdateTier(r.Context(), rec); err != nil {
		h.writeStoreError(w, err)
		return
	}
	h.auditAction(r.Context(), "admin.tier.updated", "event_tickets", id)
	writeJSON(w, http.StatusOK, rec)
}

func (h *AdminHandlers) DeleteTier(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := h.store.DeleteTier(r.Context(), id); err != nil {
		h.writeStoreError(w, err)
		return
	}
	h.auditAction(r.Context(), "admin.tier.deleted", "event_tickets", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandlers) ListMerchandise(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListMerchandise(r.Context())
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"merchandise": items})
}

func (h *AdminHandlers) GetMerchandise(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	m, variants, err := h.store.GetMerchandise(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"merchandise": m, "variants": variants})
}

func (h *AdminHandlers) CreateMerchandise(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	m := domain.Merchandise{ID: uuid.New(), Name: req.Name, Description: req.Description, Price: req.Price}
	if err := h.store.CreateMerchandise(r.Context(), m); err != nil {
		h.writeStoreError(w, err)
		return
	}
	h.auditAction(r.Context(), "admin.merchandise.created", "merchandise", m.ID)
	writeJSON(w, http.StatusCreated, m)
}

func (h *AdminHandlers) UpdateMerchandise(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var req struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	m := domain.Merchandise{ID: id, Name: req.Name, Description: req.Description, Price: req.Price}
	if err := h.store.UpdateMerchandise(r.Context(), m); err != nil {
		h.writeStoreError(w, err)
		return
	}
	h.auditAction(r.Context(), "admin.merchandise.updated", "merchandise", id)
	writeJSON(w, http.StatusOK, m)
}

func (h *AdminHandlers) DeleteMerchandise(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := h.store.DeleteMerchandise(r.Context(), id); err != nil {
		h.writeStoreError(w, err)
		return
	}
	h.auditAction(r.Context(), "admin.merchandise.deleted", "merchandise", id)
	w.WriteHeader(http.StatusNoContent)
}

// IssueCoupon grants a customer a discount for their next merchandise
// purchase. One coupon per customer key; issuing again replaces it.
func (h *AdminHandlers) IssueCoupon(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerEmail string    `json:"customer_email"`
		Code          string    `json:"code"`
		Discount      float64   `json:"discount"`
		MinPurchase   float64   `json:"min_purchase"`
		OrderID       uuid.UUID `json:"order_id"`
		ExpiresAt     time.Time `json:"expires_at"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.CustomerEmail == "" || req.Code == "" || req.Discount <= 0 {
		http.Error(w, "customer_email, code and a positive discount required", http.StatusBadRequest)
		return
	}

	coupon := domain.Coupon{
		Code:        req.Code,
		Discount:    req.Discount,
		MinPurchase: req.MinPurchase,
		OrderID:     req.OrderID,
		ExpiresAt:   req.ExpiresAt,
	}
	if err := h.coupons.Set(r.Context(), req.CustomerEmail, coupon); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			http.Error(w, "expires_at must be in the future", http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.auditAction(r.Context(), "admin.coupon.issued", "coupons", uuid.Nil)
	writeJSON(w, http.StatusCreated, coupon)
}

func (h *AdminHandlers) CreateVariant(w http.ResponseWriter, r *http.Request) {
	merchID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var req struct {
		Size  string `json:"size"`
		Color string `json:"color"`
		Stock int    `json:"stock"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	v := domain.MerchandiseVariant{ID: uuid.New(), MerchandiseID: merchID, Size: req.Size, Color: req.Color, Stock: req.Stock}
	if err := h.store.CreateVariant(r.Context(), v); err != nil {
		h.writeStoreError(w, err)
		return
	}
	h.auditAction(r.Context(), "admin.variant.created", "merchandise_variants", v.ID)
	writeJSON(w, http.StatusCreated, v)
}
