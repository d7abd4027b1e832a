// Package proc holds small process-lifetime helpers: clocks, CPU
// parallelism and waiting for a termination signal.
package proc

import (
	"context"
	"math"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"
	"time"
)

// NeverHappenedTicks is a timestamp far enough in the past that subtracting
// it from any real tick count cannot overflow. Use it to mark events that
// have not occurred yet.
const NeverHappenedTicks int64 = math.MinInt64 / 2

var startup = time.Now()

// MsSinceEpoch returns wall-clock milliseconds since the Unix epoch.
func MsSinceEpoch() int64 {
	return time.Now().UnixMilli()
}

// MsMonotonic returns milliseconds elapsed since the process started. It
// never goes backwards, even if the wall clock is adjusted.
func MsMonotonic() int64 {
	return time.Since(startup).Milliseconds()
}

var parallelism = sync.OnceValue(func() int {
	return max(cpuCount(), 1)
})

// Parallelism returns the number of CPUs the process may run on. The value
// is computed once and is at least 1.
func Parallelism() int {
	return parallelism()
}

func numCPU() int { return runtime.NumCPU() }

// AbortSignals are the signals WaitForAbort waits for.
var AbortSignals = []os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT}

// WaitForAbort blocks until the process receives one of AbortSignals and
// returns it, or returns nil once ctx is done.
func WaitForAbort(ctx context.Context) os.Signal {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, AbortSignals...)
	defer signal.Stop(ch)

	select {
	case sig := <-ch:
		return sig
	case <-ctx.Done():
		return nil
	}
}
