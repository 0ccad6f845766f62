package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors the API records into.
type Metrics struct {
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
	OrdersCreated   *prometheus.CounterVec
	StockReleases   prometheus.Counter
	PaymentsCreated *prometheus.CounterVec
}

// NewMetrics builds the collectors and registers them on reg.
// Tests pass a fresh prometheus.NewRegistry() so registrations do not collide.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		OrdersCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_created_total",
			Help:      "Order creation attempts by outcome.",
		}, []string{"outcome"}),
		StockReleases: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_reservations_released_total",
			Help:      "Stock reservations returned after a failed checkout.",
		}),
		PaymentsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_created_total",
			Help:      "Payments recorded by method.",
		}, []string{"method"}),
	}
	if reg != nil {
		reg.MustRegister(m.HTTPRequests, m.HTTPDuration, m.OrdersCreated, m.StockReleases, m.PaymentsCreated)
	}
	return m
}
