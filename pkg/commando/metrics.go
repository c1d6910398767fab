package commando

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the engine's Prometheus collectors. A nil *Metrics records
// nothing.
type Metrics struct {
	Invocations *prometheus.CounterVec
	Prompts     *prometheus.CounterVec
	Duration    *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "commando",
			Name:      "invocations_total",
			Help:      "Command invocations by command and outcome.",
		}, []string{"command", "outcome"}),
		Prompts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "commando",
			Name:      "prompts_total",
			Help:      "Argument prompts sent, by command.",
		}, []string{"command"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "commando",
			Name:      "invocation_duration_seconds",
			Help:      "Time from invocation to outcome, prompts included.",
			Buckets:   []float64{.005, .01, .05, .1, .5, 1, 5, 15, 30, 60, 120},
		}, []string{"command"}),
	}
	for _, c := range []prometheus.Collector{m.Invocations, m.Prompts, m.Duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observe(command, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Invocations.WithLabelValues(command, outcome).Inc()
	m.Duration.WithLabelValues(command).Observe(elapsed.Seconds())
}

func (m *Metrics) prompted(command string) {
	if m == nil {
		return
	}
	m.Prompts.WithLabelValues(command).Inc()
}
