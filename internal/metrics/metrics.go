package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "barberbook",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	bookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "barberbook",
			Name:      "bookings_created_total",
			Help:      "Bookings successfully created.",
		},
	)

	slotConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "barberbook",
			Name:      "slot_conflicts_total",
			Help:      "Booking attempts rejected by the unique slot index.",
		},
	)

	mailFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "barberbook",
			Name:      "mail_failures_total",
			Help:      "Confirmation or notice emails that failed to send.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, bookingsCreated, slotConflicts, mailFailures)
	})
}

// IncHTTP increments the counter for an endpoint label.
func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

func IncBookingCreated() { bookingsCreated.Inc() }

func IncSlotConflict() { slotConflicts.Inc() }

func IncMailFailure() { mailFailures.Inc() }
