// Package metrics exposes Prometheus instrumentation for the registration
// pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records registration outcomes and scheduler effort.
type Metrics interface {
	IncRegistration(outcome string)
	ObserveScanDays(days int)
}

// Registration outcome labels.
const (
	OutcomeScheduled = "scheduled"
	OutcomeRejected  = "rejected"
	OutcomeNoSlot    = "no_slot"
)

// Noop implements Metrics without emitting anything.
type Noop struct{}

func (Noop) IncRegistration(string) {}
func (Noop) ObserveScanDays(int)    {}

// Prom implements Metrics backed by Prometheus collectors on a private
// registry, so multiple instances can coexist in tests.
type Prom struct {
	registry      *prometheus.Registry
	registrations *prometheus.CounterVec
	scanDays      prometheus.Histogram
}

func NewProm(namespace string) *Prom {
	p := &Prom{
		registry: prometheus.NewRegistry(),
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "Patient registrations by outcome",
		}, []string{"outcome"}),
		scanDays: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "schedule_scan_days",
			Help:      "Days scanned before a consultation slot was found",
			Buckets:   []float64{1, 2, 3, 5, 10, 30, 90, 365},
		}),
	}
	p.registry.MustRegister(p.registrations, p.scanDays)
	return p
}

func (p *Prom) IncRegistration(outcome string) {
	p.registrations.WithLabelValues(outcome).Inc()
}

func (p *Prom) ObserveScanDays(days int) {
	p.scanDays.Observe(float64(days))
}

// Handler returns an HTTP handler serving this instance's registry.
func (p *Prom) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}
