package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bazaar_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "outcome"},
	)

	validationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bazaar_validation_failures_total",
			Help: "Rejected request payloads per component",
		},
		[]string{"component"},
	)

	deletesBlocked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bazaar_deletes_blocked_total",
			Help: "Deletes refused because of existing dependents",
		},
		[]string{"collection"},
	)

	boothTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bazaar_booth_status_transitions_total",
			Help: "Admin booth status decisions per target status",
		},
		[]string{"status"},
	)
)

// TrackRequest records one served request.
func TrackRequest(method, outcome string, duration time.Duration) {
	requestDuration.WithLabelValues(method, outcome).Observe(duration.Seconds())
}

// TrackValidationFailure records a rejected payload.
func TrackValidationFailure(component string) {
	validationFailures.WithLabelValues(component).Inc()
}

// TrackDeleteBlocked records a delete refused by the dependent guard.
func TrackDeleteBlocked(collection string) {
	deletesBlocked.WithLabelValues(collection).Inc()
}

// TrackBoothTransition records an admin booth status decision.
func TrackBoothTransition(status string) {
	boothTransitions.WithLabelValues(status).Inc()
}
