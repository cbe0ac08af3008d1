package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the wizard collectors.
type Metrics struct {
	registry prometheus.Gatherer

	StepEntries  *prometheus.CounterVec
	Toggles      *prometheus.CounterVec
	Advances     prometheus.Counter
	Selected     prometheus.Histogram
	Rejections   *prometheus.CounterVec
	AuthAttempts *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg uses the default Prometheus registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		StepEntries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wayfarer_place_step_entries_total",
				Help: "Total number of entries into the place step",
			},
			[]string{"destination"},
		),
		Toggles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wayfarer_toggles_total",
				Help: "Total number of selection toggles",
			},
			[]string{"kind"},
		),
		Advances: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wayfarer_advances_total",
			Help: "Total number of selections handed off to the next step",
		}),
		Selected: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "wayfarer_selected_places",
			Help:    "Number of places in a handed-off selection",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21},
		}),
		Rejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wayfarer_rejections_total",
				Help: "Total number of rejected wizard operations",
			},
			[]string{"reason"},
		),
		AuthAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wayfarer_auth_attempts_total",
				Help: "Total number of sign-up, login and logout attempts",
			},
			[]string{"method", "result"},
		),
	}

	reg.MustRegister(m.StepEntries, m.Toggles, m.Advances, m.Selected, m.Rejections, m.AuthAttempts)

	if g, ok := reg.(prometheus.Gatherer); ok {
		m.registry = g
	} else {
		m.registry = prometheus.DefaultGatherer
	}
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
