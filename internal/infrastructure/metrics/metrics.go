// Package metrics exposes the Prometheus collectors of the service.
// Labels are bounded: paths are route templates, statuses and departments
// come from closed sets.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "aticket"

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ticketsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tickets_created_total",
			Help:      "Tickets created by department.",
		},
		[]string{"department"},
	)

	statusChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticket_status_changes_total",
			Help:      "Applied status transitions.",
		},
		[]string{"from", "to"},
	)

	protocolReservationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "protocol_reservation_duration_seconds",
			Help:      "Time spent reserving a protocol number, lock wait included.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
	)

	notificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Notification deliveries by event kind and result.",
		},
		[]string{"kind", "result"},
	)

	departmentCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "department_cache_lookups_total",
			Help:      "Department cache lookups by result.",
		},
		[]string{"result"},
	)
)

func ObserveHTTPRequest(method, path, status string, elapsed time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

func TicketCreated(department string) {
	ticketsCreatedTotal.WithLabelValues(department).Inc()
}

func StatusChanged(from, to string) {
	statusChangesTotal.WithLabelValues(from, to).Inc()
}

func ObserveProtocolReservation(elapsed time.Duration) {
	protocolReservationDuration.Observe(elapsed.Seconds())
}

// Notification results.
const (
	ResultSent    = "sent"
	ResultFailed  = "failed"
	ResultSkipped = "skipped"
)

func NotificationDelivered(kind, result string) {
	notificationsTotal.WithLabelValues(kind, result).Inc()
}

func DepartmentCacheHit() {
	departmentCacheTotal.WithLabelValues("hit").Inc()
}

func DepartmentCacheMiss() {
	departmentCacheTotal.WithLabelValues("miss").Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
