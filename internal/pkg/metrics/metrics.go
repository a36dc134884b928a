package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	reservationsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "innkeeper",
			Name:      "reservations_created_total",
			Help:      "Reservations successfully created.",
		},
	)

	reservationConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "innkeeper",
			Name:      "reservation_conflicts_total",
			Help:      "Reservation attempts rejected because the dates were taken.",
		},
	)

	transitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "innkeeper",
			Name:      "reservation_transitions_total",
			Help:      "Reservation state transitions by target status.",
		},
		[]string{"target"},
	)

	notifyFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "innkeeper",
			Name:      "notification_failures_total",
			Help:      "Best-effort collaborator failures by kind.",
		},
		[]string{"kind"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "innkeeper",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			reservationsCreated,
			reservationConflicts,
			transitions,
			notifyFailures,
			httpDuration,
		)
	})
}

func IncReservationCreated() {
	reservationsCreated.Inc()
}

func IncReservationConflict() {
	reservationConflicts.Inc()
}

func IncTransition(target string) {
	transitions.WithLabelValues(target).Inc()
}

func IncNotifyFailure(kind string) {
	notifyFailures.WithLabelValues(kind).Inc()
}

func ObserveHTTP(method, route, status string, seconds float64) {
	httpDuration.WithLabelValues(method, route, status).Observe(seconds)
}
