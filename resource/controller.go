// Package resource budgets the memory arenas reserve and paces packet I/O.
//
// A single Controller is typically shared by every arena of a process so
// that the total size of all backing regions stays under one hard limit.
// All methods are safe on a nil *Controller, which tracks and limits nothing.
package resource

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ErrMemoryLimitExceeded is returned when a reservation would exceed the memory limit.
var ErrMemoryLimitExceeded = errors.New("memory limit exceeded")

// Config holds resource limits.
type Config struct {
	// MemoryLimitBytes is the hard limit for arena backing memory.
	// If 0, no hard limit is enforced (only tracking).
	MemoryLimitBytes int64

	// IOLimitBytesPerSec is the maximum egress throughput.
	// If 0, unlimited.
	IOLimitBytesPerSec int64

	// IOBurstBytes is the largest single write the limiter admits at once.
	// If 0, it defaults to IOLimitBytesPerSec.
	IOBurstBytes int
}

// Controller manages process-wide memory and I/O budgets.
type Controller struct {
	cfg Config

	// Memory
	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64

	// IO
	ioLimiter *rate.Limiter
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	c := &Controller{cfg: cfg}

	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}

	if cfg.IOLimitBytesPerSec > 0 {
		burst := cfg.IOBurstBytes
		if burst <= 0 {
			burst = int(cfg.IOLimitBytesPerSec)
		}
		c.ioLimiter = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), burst)
	}

	return c
}

// AcquireMemory reserves bytes without blocking.
// It returns ErrMemoryLimitExceeded if the reservation does not fit.
func (c *Controller) AcquireMemory(bytes int64) error {
	if c == nil || bytes <= 0 {
		return nil
	}

	if c.memSem != nil && !c.memSem.TryAcquire(bytes) {
		return fmt.Errorf("%w: requested %d bytes, %d of %d in use",
			ErrMemoryLimitExceeded, bytes, c.memUsed.Load(), c.cfg.MemoryLimitBytes)
	}

	c.memUsed.Add(bytes)
	return nil
}

// ReleaseMemory returns a reservation made by AcquireMemory.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil || bytes <= 0 {
		return
	}

	if c.memSem != nil {
		c.memSem.Release(bytes)
	}
	c.memUsed.Add(-bytes)
}

// MemoryUsage returns the currently reserved bytes.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// MemoryLimit returns the configured hard limit, or 0 if unlimited.
func (c *Controller) MemoryLimit() int64 {
	if c == nil {
		return 0
	}
	return c.cfg.MemoryLimitBytes
}

// AcquireIO waits until the IO limit allows the specified number of bytes.
func (c *Controller) AcquireIO(ctx context.Context, bytes int) error {
	if c == nil || c.ioLimiter == nil {
		return nil
	}
	if burst := c.ioLimiter.Burst(); bytes > burst {
		// WaitN rejects requests above the burst; pace them in burst-sized steps.
		for bytes > burst {
			if err := c.ioLimiter.WaitN(ctx, burst); err != nil {
				return err
			}
			bytes -= burst
		}
	}
	return c.ioLimiter.WaitN(ctx, bytes)
}

// TryAcquireIO reports whether bytes may be transferred right now.
func (c *Controller) TryAcquireIO(bytes int) bool {
	if c == nil || c.ioLimiter == nil {
		return true
	}
	return c.ioLimiter.AllowN(time.Now(), bytes)
}
