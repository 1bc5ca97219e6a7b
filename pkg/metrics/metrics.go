// Copyright: This file is part of implindex, released under https://github.com/korrel8r/implindex/blob/main/LICENSE

// Package metrics records registry events as Prometheus metrics.
package metrics

import (
	"github.com/korrel8r/implindex/pkg/implementors"
	"github.com/korrel8r/implindex/pkg/registry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const Namespace = "implindex"

// Metrics implements [registry.Observer].
type Metrics struct {
	contributions *prometheus.CounterVec
	buffered      prometheus.Counter
	overwrites    prometheus.Counter
	pending       prometheus.Gauge
	capabilities  prometheus.Gauge
	installed     prometheus.Gauge
}

var _ registry.Observer = &Metrics{}

// New creates metrics and registers them with reg.
// Panics if the metrics are already registered with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	m := &Metrics{
		contributions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "contributions_total",
			Help:      "Contributions merged into the index, by merge path.",
		}, []string{"path"}),
		buffered: factory.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "buffered_total",
			Help:      "Contributions added to the pending buffer before the registrar was installed.",
		}),
		overwrites: factory.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "overwrites_total",
			Help:      "Unit implementor lists replaced by a later contribution with different content.",
		}),
		pending: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "pending",
			Help:      "Contributions waiting in the pending buffer.",
		}),
		capabilities: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "capabilities",
			Help:      "Capabilities in the index.",
		}),
		installed: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "installed",
			Help:      "1 if the registrar is installed, 0 otherwise.",
		}),
	}
	// Pre-create both label values so they are exported as 0.
	for _, p := range []registry.Path{registry.Direct, registry.Deferred} {
		m.contributions.WithLabelValues(string(p))
	}
	return m
}

func (m *Metrics) Merged(_ implementors.Capability, path registry.Path, overwrites int, capabilities int) {
	m.contributions.WithLabelValues(string(path)).Inc()
	m.overwrites.Add(float64(overwrites))
	m.capabilities.Set(float64(capabilities))
}

func (m *Metrics) Buffered(_ implementors.Capability, pending int) {
	m.buffered.Inc()
	m.pending.Set(float64(pending))
}

func (m *Metrics) Installed(int) {
	m.pending.Set(0)
	m.installed.Set(1)
}
