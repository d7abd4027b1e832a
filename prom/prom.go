// Package prom exports arena metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	c := prom.NewCollector("rx")
//	if err := c.Register(reg); err != nil { ... }
//	arena, err := netbuf.NewArena(2048, 1024, netbuf.WithName("rx"), netbuf.WithMetricsCollector(c))
//	reg.MustRegister(prom.NewPoolRemainingGauge(arena))
package prom

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/netbuf"
)

const namespace = "netbuf"

// Checkout source label values.
const (
	SourcePool     = "pool"
	SourceFallback = "fallback"
)

// Collector implements netbuf.MetricsCollector on Prometheus metrics. All
// metrics carry a constant "arena" label.
type Collector struct {
	checkouts       *prometheus.CounterVec
	releases        prometheus.Counter
	teardowns       prometheus.Counter
	teardownPending prometheus.Histogram
}

var _ netbuf.MetricsCollector = (*Collector)(nil)

// NewCollector creates unregistered metrics for the named arena.
func NewCollector(arena string) *Collector {
	labels := prometheus.Labels{"arena": arena}
	return &Collector{
		checkouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "arena",
			Name:        "checkouts_total",
			Help:        "Buffers handed out by Get, by source (pool or fallback).",
			ConstLabels: labels,
		}, []string{"source"}),
		releases: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "arena",
			Name:        "releases_total",
			Help:        "Pooled buffers returned to their arena.",
			ConstLabels: labels,
		}),
		teardowns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "arena",
			Name:        "teardowns_total",
			Help:        "Arena backing regions released.",
			ConstLabels: labels,
		}),
		teardownPending: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "arena",
			Name:        "teardown_pending_seconds",
			Help:        "Time between Close and teardown of an arena.",
			ConstLabels: labels,
			Buckets:     prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
	}
}

// Register registers all metrics with reg.
func (c *Collector) Register(reg prometheus.Registerer) error {
	var errs []error
	for _, m := range []prometheus.Collector{c.checkouts, c.releases, c.teardowns, c.teardownPending} {
		if err := reg.Register(m); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RecordCheckout implements netbuf.MetricsCollector.
func (c *Collector) RecordCheckout(pooled bool) {
	if pooled {
		c.checkouts.WithLabelValues(SourcePool).Inc()
	} else {
		c.checkouts.WithLabelValues(SourceFallback).Inc()
	}
}

// RecordRelease implements netbuf.MetricsCollector.
func (c *Collector) RecordRelease() {
	c.releases.Inc()
}

// RecordTeardown implements netbuf.MetricsCollector.
func (c *Collector) RecordTeardown(_ int, pending time.Duration) {
	c.teardowns.Inc()
	c.teardownPending.Observe(pending.Seconds())
}

// NewPoolRemainingGauge returns a gauge reporting a's free slots at scrape
// time.
func NewPoolRemainingGauge(a *netbuf.Arena) prometheus.GaugeFunc {
	return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   namespace,
		Subsystem:   "arena",
		Name:        "pool_remaining",
		Help:        "Free buffers in the arena.",
		ConstLabels: prometheus.Labels{"arena": a.Name()},
	}, func() float64 {
		return float64(a.PoolRemaining())
	})
}
