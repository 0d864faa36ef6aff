package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Count of HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	ordersCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "campbook",
			Name:      "orders_created_total",
			Help:      "Count of orders created by source.",
		},
		[]string{"source"},
	)

	scheduleConflicts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "campbook",
			Name:      "schedule_conflicts_total",
			Help:      "Count of rejected writes due to a coach, vehicle or driver time clash.",
		},
		[]string{"resource"},
	)

	publicBookings = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "campbook",
			Name:      "public_bookings_total",
			Help:      "Count of public booking attempts by result.",
		},
		[]string{"result"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, ordersCreated, scheduleConflicts, publicBookings)
	})
}

func ObserveHTTP(method, route, status string, seconds float64) {
	httpRequests.WithLabelValues(method, route, status).Inc()
	httpDuration.WithLabelValues(method, route).Observe(seconds)
}

func IncOrderCreated(source string) {
	ordersCreated.WithLabelValues(source).Inc()
}

func IncScheduleConflict(resource string) {
	scheduleConflicts.WithLabelValues(resource).Inc()
}

func IncPublicBooking(result string) {
	publicBookings.WithLabelValues(result).Inc()
}
