package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "facultyroom",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	bookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "facultyroom",
			Name:      "bookings_created_total",
			Help:      "Booking requests accepted into the ledger.",
		},
	)

	bookingConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "facultyroom",
			Name:      "booking_conflicts_total",
			Help:      "Booking requests rejected because the slot was taken.",
		},
	)

	statusChanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "facultyroom",
			Name:      "booking_status_changes_total",
			Help:      "Status flips by resulting status.",
		},
		[]string{"status"},
	)

	weekResets = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "facultyroom",
			Name:      "week_resets_total",
			Help:      "Developer-triggered resets of the current week.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, bookingsCreated, bookingConflicts, statusChanges, weekResets)
	})
}

// IncHTTP increments the request counter for an endpoint label.
func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

func IncBookingCreated() {
	bookingsCreated.Inc()
}

func IncBookingConflict() {
	bookingConflicts.Inc()
}

func IncStatusChange(status string) {
	statusChanges.WithLabelValues(status).Inc()
}

func IncWeekReset() {
	weekResets.Inc()
}
