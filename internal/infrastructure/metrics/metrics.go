package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts lifecycle transitions. All methods are nil-safe so usecases
// can be constructed without metrics in tests.
type Metrics struct {
	Transitions     *prometheus.CounterVec
	SweepExpiries   prometheus.Counter
	GatewayFailures prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		Transitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "auction_registration_transitions_total",
			Help: "Registration lifecycle transitions applied, by transition name",
		}, []string{"transition"}),
		SweepExpiries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "auction_registration_deposit_sweep_expiries_total",
			Help: "Registrations auto-rejected by the deposit deadline sweep",
		}),
		GatewayFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "auction_registration_payment_gateway_failures_total",
			Help: "Payment gateway calls that returned an error",
		}),
	}
}

func (m *Metrics) RecordTransition(name string) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(name).Inc()
}

func (m *Metrics) RecordSweepExpiry() {
	if m == nil {
		return
	}
	m.SweepExpiries.Inc()
}

func (m *Metrics) RecordGatewayFailure() {
	if m == nil {
		return
	}
	m.GatewayFailures.Inc()
}
