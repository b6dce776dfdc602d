package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ironhold_http_requests_total",
			Help: "Total number of HTTP requests processed, by method, path and status.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ironhold_http_request_duration_seconds",
			Help:    "HTTP request latency distribution.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ironhold_http_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	)
)

// Business Metrics
var (
	ItemsTransferred = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ironhold_items_transferred_total",
			Help: "Total item units moved between players.",
		},
	)

	ItemsConsumed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ironhold_items_consumed_total",
			Help: "Total consumable items used.",
		},
	)

	ListingsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ironhold_market_listings_created_total",
			Help: "Total market listings created.",
		},
	)

	PurchasesSettled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ironhold_market_purchases_total",
			Help: "Total market purchases settled.",
		},
	)

	SilverTransferred = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ironhold_silver_transferred_total",
			Help: "Total silver moved by transfers and purchases.",
		},
	)

	LevelUps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ironhold_level_ups_total",
			Help: "Total level-ups applied by the progression manager.",
		},
	)

	TxConflictRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ironhold_tx_conflict_retries_total",
			Help: "Serializable transaction conflicts that triggered a retry.",
		},
	)
)
