package wire

import (
	"fmt"
	"sync"
)

// Pool recycles buffers of one capacity.
//
// Buffers come back cleared from Get. A buffer must not be used after Put.
type Pool struct {
	capacity int
	pool     sync.Pool
}

// NewPool returns a pool of buffers with the given capacity.
// It panics if capacity is negative.
func NewPool(capacity int) *Pool {
	if capacity < 0 {
		panic(fmt.Sprintf("wire: negative pool capacity %d", capacity))
	}
	p := &Pool{capacity: capacity}
	p.pool.New = func() any {
		return New(capacity)
	}
	return p
}

// Capacity returns the capacity of the pooled buffers.
func (p *Pool) Capacity() int { return p.capacity }

// Get retrieves an empty buffer from the pool.
func (p *Pool) Get() *Buffer {
	return p.pool.Get().(*Buffer)
}

// Put clears w and returns it to the pool. Buffers of another capacity are
// dropped.
func (p *Pool) Put(w *Buffer) {
	if w == nil || w.Cap() != p.capacity {
		return
	}
	w.Clear()
	p.pool.Put(w)
}
