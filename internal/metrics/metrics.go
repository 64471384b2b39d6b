package metrics

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	apiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_api_requests_total",
			Help: "Total number of requests issued against the storefront API.",
		},
		[]string{"code", "method", "operation"},
	)
	apiRequestsDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_api_request_duration_seconds",
			Help:    "Duration of storefront API requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "operation"},
	)

	cartOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_cart_operations_total",
			Help: "Total number of cart mutations by operation.",
		},
		[]string{"operation"},
	)

	ordersSubmittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_orders_submitted_total",
			Help: "Checkout submissions by outcome.",
		},
		[]string{"outcome"},
	)
)

func init() {
	if err := prometheus.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		slog.Debug("ProcessCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}

	if err := prometheus.Register(collectors.NewGoCollector()); err != nil {
		slog.Debug("GoCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}
}

// ObserveAPIRequest records one completed call against the external API.
func ObserveAPIRequest(method, operation string, statusCode int, duration time.Duration) {
	apiRequestsTotal.WithLabelValues(strconv.Itoa(statusCode), method, operation).Inc()
	apiRequestsDuration.WithLabelValues(method, operation).Observe(duration.Seconds())
}

// CountCartOperation records one cart mutation (add, remove, clear, reconcile).
func CountCartOperation(operation string) {
	cartOperationsTotal.WithLabelValues(operation).Inc()
}

// CountOrderSubmission records a checkout submission outcome (success, failure).
func CountOrderSubmission(outcome string) {
	ordersSubmittedTotal.WithLabelValues(outcome).Inc()
}

// http.Handler for the Prometheus /metrics endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}
