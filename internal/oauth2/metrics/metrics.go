package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the authorize flow.
type Metrics struct {
	AuthorizeRequests *prometheus.CounterVec
	CodesIssued       prometheus.Counter
	AuthorizeDuration prometheus.Histogram
}

// New creates and registers all authorize-flow metrics.
func New() *Metrics {
	return &Metrics{
		AuthorizeRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "authgate_authorize_requests_total",
			Help: "Total authorization requests by outcome",
		}, []string{"outcome"}),
		CodesIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "authgate_authorization_codes_issued_total",
			Help: "Total authorization codes issued",
		}),
		AuthorizeDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "authgate_authorize_duration_seconds",
			Help:    "Authorize request processing duration",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// Outcome labels for AuthorizeRequests.
const (
	OutcomeGranted  = "granted"
	OutcomeAwaiting = "awaiting_authentication"
	OutcomeRejected = "rejected"
)

func (m *Metrics) ObserveOutcome(outcome string) {
	m.AuthorizeRequests.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementCodesIssued() {
	m.CodesIssued.Inc()
}
