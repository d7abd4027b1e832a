package netbuf

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bits-and-blooms/bitset"
	"golang.org/x/sys/cpu"

	"github.com/hupe1980/netbuf/internal/conv"
	"github.com/hupe1980/netbuf/internal/mmap"
	"github.com/hupe1980/netbuf/resource"
)

// ArenaState is the lifecycle stage of an arena.
type ArenaState int32

const (
	// ArenaAlive accepts checkouts.
	ArenaAlive ArenaState = iota
	// ArenaTeardownPending has been closed while buffers were checked out.
	// The backing region is released when the last one comes back.
	ArenaTeardownPending
	// ArenaTornDown has released its backing region.
	ArenaTornDown
)

func (s ArenaState) String() string {
	switch s {
	case ArenaAlive:
		return "alive"
	case ArenaTeardownPending:
		return "teardown-pending"
	case ArenaTornDown:
		return "torn-down"
	default:
		return fmt.Sprintf("ArenaState(%d)", int32(s))
	}
}

// ArenaStats is a point-in-time snapshot of an arena.
type ArenaStats struct {
	BufferCapacity    int
	Slots             int
	Free              int
	CheckedOut        int
	BackingBytes      int
	PooledCheckouts   uint64
	FallbackCheckouts uint64
	Releases          uint64
	State             ArenaState
}

// Arena hands out fixed-capacity buffers carved from one contiguous
// backing region and takes them back on Buffer.Release.
//
// When every slot is checked out, Get falls back to allocating a standalone
// buffer, so callers never block. Close may be called while buffers are
// still out; the region is released by whichever of Close or the final
// Release happens last.
//
// All methods are safe for concurrent use.
type Arena struct {
	inner *arenaInner
}

// arenaInner is the control block shared by the arena handle and every
// buffer checked out of it.
type arenaInner struct {
	name       string
	bufCap     int
	slots      int
	reserved   int64
	controller *resource.Controller
	logger     *Logger
	metrics    MetricsCollector

	mu       sync.Mutex
	backing  []byte
	mapping  *mmap.Mapping // nil for heap backing
	free     []uint32      // stack of free slot indices; cap == slots
	out      *bitset.BitSet
	closed   bool
	closedAt time.Time
	state    ArenaState

	_ cpu.CacheLinePad

	pooledCheckouts   atomic.Uint64
	fallbackCheckouts atomic.Uint64
	releases          atomic.Uint64
}

// NewArena creates an arena of slotCount buffers of bufferCapacity bytes
// each, all initially free.
//
// It panics if bufferCapacity is not a positive multiple of 8 no greater
// than MaxCapacity, or if slotCount is not positive. Errors are returned
// only when the memory budget or the operating system refuses the region.
func NewArena(bufferCapacity, slotCount int, opts ...Option) (*Arena, error) {
	checkCapacity(bufferCapacity)
	if slotCount <= 0 {
		panic(fmt.Sprintf("netbuf: invalid arena slot count %d", slotCount))
	}
	if _, err := conv.IntToUint32(slotCount); err != nil {
		panic(fmt.Sprintf("netbuf: invalid arena slot count: %v", err))
	}

	size, err := conv.MulInt(bufferCapacity, slotCount)
	if err != nil {
		return nil, fmt.Errorf("netbuf: arena size: %w", err)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := o.controller.AcquireMemory(int64(size)); err != nil {
		return nil, fmt.Errorf("netbuf: reserve arena memory: %w", err)
	}

	in := &arenaInner{
		name:       o.name,
		bufCap:     bufferCapacity,
		slots:      slotCount,
		reserved:   int64(size),
		controller: o.controller,
		metrics:    o.metricsCollector,
		free:       make([]uint32, slotCount),
		out:        bitset.New(uint(slotCount)),
	}

	backingKind := "heap"
	if o.heapBacking {
		in.backing = make([]byte, size)
	} else {
		m, err := mmap.MapAnon(size)
		if err != nil {
			o.controller.ReleaseMemory(int64(size))
			return nil, fmt.Errorf("netbuf: map arena: %w", err)
		}
		in.mapping = m
		in.backing = m.Bytes()
		backingKind = "mmap"
	}

	// Slot 0 on top so checkouts walk the region front to back.
	for i := range in.free {
		in.free[i] = uint32(slotCount - 1 - i)
	}

	in.logger = o.logger.WithArena(o.name, bufferCapacity, slotCount).WithBacking(backingKind)
	in.logger.LogArenaCreated(context.Background(), size)

	return &Arena{inner: in}, nil
}

// Get checks out a buffer of BufferCapacity bytes with zero length.
// If no slot is free it returns a standalone buffer of the same capacity.
// It panics if the arena has been closed.
func (a *Arena) Get() *Buffer {
	in := a.inner

	in.mu.Lock()
	if in.closed {
		in.mu.Unlock()
		panic("netbuf: Get on closed arena")
	}
	n := len(in.free)
	if n == 0 {
		in.mu.Unlock()
		fallbacks := in.fallbackCheckouts.Add(1)
		in.metrics.RecordCheckout(false)
		in.logger.LogArenaExhausted(context.Background(), int64(fallbacks))
		return NewBuffer(in.bufCap)
	}
	slot := in.free[n-1]
	in.free = in.free[:n-1]
	in.out.Set(uint(slot))
	off := int(slot) * in.bufCap
	data := in.backing[off : off : off+in.bufCap]
	in.mu.Unlock()

	in.pooledCheckouts.Add(1)
	in.metrics.RecordCheckout(true)
	return &Buffer{data: data, owner: in, slot: slot}
}

// GetWithMinCapacity returns Get() if minCapacity fits in a slot, otherwise
// a standalone buffer of exactly minCapacity bytes, which must satisfy the
// same constraints as NewBuffer. It panics if the arena has been closed.
func (a *Arena) GetWithMinCapacity(minCapacity int) *Buffer {
	if minCapacity <= a.inner.bufCap {
		return a.Get()
	}
	a.inner.mu.Lock()
	closed := a.inner.closed
	a.inner.mu.Unlock()
	if closed {
		panic("netbuf: Get on closed arena")
	}
	return NewBuffer(minCapacity)
}

// PoolRemaining returns the number of free slots. SlotCount minus
// PoolRemaining is the number of pooled buffers currently checked out.
func (a *Arena) PoolRemaining() int {
	a.inner.mu.Lock()
	defer a.inner.mu.Unlock()
	return len(a.inner.free)
}

// BufferCapacity returns the capacity of every pooled buffer.
func (a *Arena) BufferCapacity() int { return a.inner.bufCap }

// SlotCount returns the number of slots.
func (a *Arena) SlotCount() int { return a.inner.slots }

// Name returns the name given with WithName.
func (a *Arena) Name() string { return a.inner.name }

// State returns the lifecycle stage.
func (a *Arena) State() ArenaState {
	a.inner.mu.Lock()
	defer a.inner.mu.Unlock()
	return a.inner.state
}

// Stats returns a snapshot of the arena.
func (a *Arena) Stats() ArenaStats {
	in := a.inner

	in.mu.Lock()
	free := len(in.free)
	state := in.state
	in.mu.Unlock()

	backing := int(in.reserved)
	if state == ArenaTornDown {
		backing = 0
	}

	return ArenaStats{
		BufferCapacity:    in.bufCap,
		Slots:             in.slots,
		Free:              free,
		CheckedOut:        in.slots - free,
		BackingBytes:      backing,
		PooledCheckouts:   in.pooledCheckouts.Load(),
		FallbackCheckouts: in.fallbackCheckouts.Load(),
		Releases:          in.releases.Load(),
		State:             state,
	}
}

func (a *Arena) String() string {
	s := a.Stats()
	return fmt.Sprintf("arena %s: %d x %d bytes, %d free, %s", a.inner.name, s.Slots, s.BufferCapacity, s.Free, s.State)
}

// Close gives up the owner's reference. If every slot is free the backing
// region is released now and the unmap error, if any, is returned.
// Otherwise teardown is deferred to the last Buffer.Release.
// Close is idempotent.
func (a *Arena) Close() error {
	in := a.inner

	in.mu.Lock()
	if in.closed {
		in.mu.Unlock()
		return nil
	}
	in.closed = true
	in.closedAt = time.Now()
	outstanding := in.slots - len(in.free)
	if outstanding > 0 {
		in.state = ArenaTeardownPending
		in.mu.Unlock()
		in.logger.LogTeardownPending(context.Background(), outstanding)
		return nil
	}
	in.state = ArenaTornDown
	in.mu.Unlock()

	return in.teardown(0)
}

// put returns a pooled slot. It tears the arena down if the owner has
// closed it and this was the last outstanding slot.
func (in *arenaInner) put(slot uint32) {
	in.mu.Lock()
	if len(in.free) == cap(in.free) {
		in.mu.Unlock()
		panic("netbuf: arena free list overflow")
	}
	if !in.out.Test(uint(slot)) {
		in.mu.Unlock()
		panic(fmt.Sprintf("netbuf: slot %d returned but not checked out", slot))
	}
	in.out.Clear(uint(slot))
	in.free = append(in.free, slot)

	var pending time.Duration
	last := in.closed && len(in.free) == cap(in.free)
	if last {
		in.state = ArenaTornDown
		pending = time.Since(in.closedAt)
	}
	in.mu.Unlock()

	in.releases.Add(1)
	in.metrics.RecordRelease()

	if last {
		_ = in.teardown(pending) // logged
	}
}

// teardown releases the backing region. The caller must have moved state
// to ArenaTornDown under mu, which guarantees a single invocation.
func (in *arenaInner) teardown(pending time.Duration) error {
	var err error
	if in.mapping != nil {
		err = in.mapping.Close()
	}

	in.mu.Lock()
	in.backing = nil
	in.mapping = nil
	in.mu.Unlock()

	in.controller.ReleaseMemory(in.reserved)
	in.metrics.RecordTeardown(in.slots, pending)
	in.logger.LogTeardown(context.Background(), pending, err)
	return err
}
