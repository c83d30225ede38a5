package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hamed0406/preflight/internal/probe"
	"github.com/hamed0406/preflight/internal/sources"
)

// Collector counts probes and their latencies. The api binary exposes these
// on /metrics; the CLI records them too but never serves them.
type Collector struct {
	probesTotal   *prometheus.CounterVec
	probeDuration *prometheus.HistogramVec
	runsTotal     prometheus.Counter
}

func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		probesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "preflight_probes_total",
				Help: "Total probes issued, by protocol and outcome",
			},
			[]string{"protocol", "outcome"},
		),
		probeDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "preflight_probe_duration_seconds",
				Help:    "Wall-clock duration of probes (post-retry)",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"protocol"},
		),
		runsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "preflight_runs_total",
				Help: "Number of preflight passes executed",
			},
		),
	}
}

func (c *Collector) RunStarted() {
	if c == nil {
		return
	}
	c.runsTotal.Inc()
}

func (c *Collector) ObserveProbe(p sources.Protocol, r probe.Result) {
	if c == nil {
		return
	}
	outcome := "failed"
	if r.OK {
		outcome = "ok"
	}
	c.probesTotal.WithLabelValues(string(p), outcome).Inc()
	if r.Elapsed >= 0 {
		c.probeDuration.WithLabelValues(string(p)).Observe(r.Elapsed)
	}
}
