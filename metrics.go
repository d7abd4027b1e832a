package netbuf

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting arena metrics.
// Implement this interface to integrate with monitoring systems; package
// prom provides a Prometheus implementation.
//
// Methods are called while the arena mutex is NOT held, but may be called
// concurrently from many goroutines.
type MetricsCollector interface {
	// RecordCheckout is called for every Get. pooled is false when the
	// arena was exhausted and a standalone buffer was returned instead.
	RecordCheckout(pooled bool)

	// RecordRelease is called when a pooled buffer returns to its slot.
	// Standalone fallbacks carry no owner and are not reported.
	RecordRelease()

	// RecordTeardown is called once when the backing region is released.
	// pending is the time between Close and teardown (zero if immediate).
	RecordTeardown(slots int, pending time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordCheckout(bool)               {}
func (NoopMetricsCollector) RecordRelease()                    {}
func (NoopMetricsCollector) RecordTeardown(int, time.Duration) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	PooledCheckouts     atomic.Int64
	FallbackCheckouts   atomic.Int64
	Releases            atomic.Int64
	Teardowns           atomic.Int64
	TeardownPendingNano atomic.Int64
}

// RecordCheckout implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCheckout(pooled bool) {
	if pooled {
		b.PooledCheckouts.Add(1)
	} else {
		b.FallbackCheckouts.Add(1)
	}
}

// RecordRelease implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRelease() {
	b.Releases.Add(1)
}

// RecordTeardown implements MetricsCollector.
func (b *BasicMetricsCollector) RecordTeardown(_ int, pending time.Duration) {
	b.Teardowns.Add(1)
	b.TeardownPendingNano.Add(pending.Nanoseconds())
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		PooledCheckouts:   b.PooledCheckouts.Load(),
		FallbackCheckouts: b.FallbackCheckouts.Load(),
		Releases:          b.Releases.Load(),
		Teardowns:         b.Teardowns.Load(),
		TeardownPending:   time.Duration(b.TeardownPendingNano.Load()),
	}
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	PooledCheckouts   int64
	FallbackCheckouts int64
	Releases          int64
	Teardowns         int64
	TeardownPending   time.Duration
}

// Outstanding returns pooled checkouts not yet released.
func (s BasicMetricsStats) Outstanding() int64 {
	return s.PooledCheckouts - s.Releases
}
