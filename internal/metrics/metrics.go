package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	SalesRecordedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stall_sales_recorded_total",
			Help: "Sales recorded through checkout",
		},
	)

	SaleRevenueTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stall_sale_revenue_total",
			Help: "Cumulative revenue of recorded sales",
		},
	)

	OrderItemsCompletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stall_order_items_completed_total",
			Help: "Order items marked done by preparation staff",
		},
	)

	StockLogFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stall_stock_log_failures_total",
			Help: "Best-effort stock log writes that failed after a sale",
		},
	)
)
