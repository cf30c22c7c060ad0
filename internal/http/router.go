package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/marquee-live/storefront/internal/idempotency"
	"github.com/marquee-live/storefront/internal/observability"
	"github.com/marquee-live/storefront/internal/rateLimit"
)

func SetupRouter(h *Handlers, admin *AdminHandlers, logger observability.Logger, rl *rateLimit.RateLimiter, idemp *idempotency.Idempotency) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(LoggerMiddleware(logger))
	r.Use(TracingMiddleware)
	r.Use(RateLimitMiddleware(rl))
	r.Use(IdempotencyMiddleware(idemp))

	r.Get("/v1/events/{id}/tiers", h.ListTiers)
	r.Post("/v1/checkout/tickets", h.CheckoutTickets)
	r.Post("/v1/checkout/merchandise", h.CheckoutMerchandise)
	r.Get("/v1/orders/{id}", h.GetOrder)
	r.Post("/v1/newsletter", h.SubscribeNewsletter)

	r.Route("/v1/admin", func(r chi.Router) {
		r.Get("/customers", admin.ListCustomers)
		r.Post("/customers", admin.CreateCustomer)
		r.Get("/customers/{id}", admin.GetCustomer)
		r.Put("/customers/{id}", admin.UpdateCustomer)
		r.Delete("/customers/{id}", admin.DeleteCustomer)

		r.Get("/orders", admin.ListOrders)
		r.Put("/orders/{id}/status", admin.UpdateOrderStatus)

		r.Get("/tickets", admin.ListTiers)
		r.Post("/tickets", admin.CreateTier)
		r.Put("/tickets/{id}", admin.UpdateTier)
		r.Delete("/tickets/{id}", admin.DeleteTier)

		r.Get("/merchandise", admin.ListMerchandise)
		r.Post("/merchandise", admin.CreateMerchandise)
		r.Get("/merchandise/{id}", admin.GetMerchandise)
		r.Put("/merchandise/{id}", admin.UpdateMerchandise)
		r.Delete("/merchandise/{id}", admin.DeleteMerchandise)
		r.Post("/merchandise/{id}/variants", admin.CreateVariant)

		r.Post("/coupons", admin.IssueCoupon)
	})

	r.Get("/v1/healthz", h.Healthz)
	r.Get("/v1/readyz", h.Readyz)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}
