package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_requests_total",
			Help: "Total number of requests",
		},
		[]string{"route", "code", "method"},
	)

	CheckoutsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_checkouts_total",
			Help: "Checkout submissions by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	CouponsApplied = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_coupons_applied_total",
			Help: "Coupons applied to successful purchases",
		},
	)

	DBTxDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "storefront_db_tx_seconds",
			Help:    "Duration of DB transactions",
			Buckets: prometheus.DefBuckets,
		},
	)

	OutboxLag = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_outbox_lag_seconds",
			Help: "Lag of outbox publishing",
		},
	)

	EmailsDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_emails_dispatched_total",
			Help: "Confirmation emails by dispatch status",
		},
		[]string{"status"},
	)

	RateLimitExceeded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_rate_limit_exceeded_total",
			Help: "Total rate limit exceeded",
		},
	)
)
