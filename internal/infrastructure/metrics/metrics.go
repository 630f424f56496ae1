package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	usecasecontract "github.com/Prakash9019/my-cricket-reg-app/internal/usecase/contract"
)

// Metrics holds the Prometheus collectors of the registration service.
type Metrics struct {
	registrations       *prometheus.CounterVec
	sequenceAllocations prometheus.Counter
	HTTPDuration        *prometheus.HistogramVec
}

var _ usecasecontract.IMetrics = (*Metrics)(nil)

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cricket",
			Name:      "registrations_total",
			Help:      "Player registration attempts by outcome.",
		}, []string{"outcome"}),
		sequenceAllocations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cricket",
			Name:      "sequence_allocations_total",
			Help:      "Sequence numbers handed out by the player counter.",
		}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cricket",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(m.registrations, m.sequenceAllocations, m.HTTPDuration)
	return m
}

func (m *Metrics) ObserveRegistration(outcome string) {
	m.registrations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveSequenceAllocation() {
	m.sequenceAllocations.Inc()
}
