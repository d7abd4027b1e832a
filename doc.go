// Package netbuf provides fixed-capacity byte buffers and an arena that
// pools them for packet-oriented network code.
//
// # Buffers
//
// A Buffer has a capacity fixed at creation. Appends that do not fit fail
// without modifying the buffer, so a half-written packet is never observed:
//
//	b := netbuf.NewBuffer(1500)
//	defer b.Release()
//	if !b.Append(header) || !b.Append(payload) {
//	    // too big for one datagram
//	}
//	conn.Write(b.Bytes())
//
// # Arenas
//
// An Arena carves many same-sized buffers out of one anonymous memory
// mapping and recycles them through a free list guarded by a single mutex:
//
//	arena, err := netbuf.NewArena(2048, 4096,
//	    netbuf.WithName("udp-rx"),
//	    netbuf.WithLogger(netbuf.NewJSONLogger(slog.LevelInfo)),
//	)
//	if err != nil { ... }
//	defer arena.Close()
//
//	b := arena.Get()
//	n, err := b.FillFrom(conn)
//	...
//	b.Release() // slot goes back to the arena
//
// When the arena is exhausted, Get returns a standalone buffer of the same
// capacity instead of blocking. PoolRemaining can be used for backpressure.
//
// # Lifetime
//
// Go has no destructors, so both sides are explicit. Every buffer must be
// released exactly once. Closing an arena while buffers are still checked
// out is allowed: the backing region is unmapped by whichever of Close or
// the last Release happens last, and exactly once.
//
// Pooled buffers alias memory that is unmapped at teardown. Slices obtained
// from Bytes must not outlive Release.
//
// # Observability
//
// Lifecycle events go to a Logger (a log/slog wrapper, silent by default).
// Counters are exposed through Arena.Stats and can be fed to any
// MetricsCollector; package prom adapts them to Prometheus. Backing memory
// can be charged against a shared resource.Controller budget.
package netbuf
