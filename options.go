package netbuf

import (
	"github.com/hupe1980/netbuf/resource"
)

type options struct {
	name             string
	logger           *Logger
	metricsCollector MetricsCollector
	controller       *resource.Controller
	heapBacking      bool
}

// Option configures NewArena.
type Option func(*options)

// WithName labels the arena in logs and metrics.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithLogger sets the logger for arena lifecycle events.
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets the collector notified on every checkout,
// release and teardown. If nil is passed, a no-op collector is used.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithMemoryController charges the arena's backing region against rc.
// The reservation is released when the arena is torn down.
func WithMemoryController(rc *resource.Controller) Option {
	return func(o *options) {
		o.controller = rc
	}
}

// WithHeapBacking allocates the backing region on the Go heap instead of
// an anonymous memory mapping.
//
// Heap backing keeps slices returned by Buffer.Bytes valid (if stale) after
// teardown, at the cost of putting the whole pool under GC scanning.
func WithHeapBacking() Option {
	return func(o *options) {
		o.heapBacking = true
	}
}

func defaultOptions() options {
	return options{
		name:             "arena",
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
}
