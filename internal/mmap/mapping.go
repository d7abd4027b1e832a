package mmap

import (
	"errors"
	"sync/atomic"
)

var (
	// ErrInvalidSize is returned when a mapping of non-positive size is requested.
	ErrInvalidSize = errors.New("mmap: invalid size")

	// ErrClosed is returned by Advise on a closed mapping.
	ErrClosed = errors.New("mmap: mapping closed")
)

// AccessPattern is a kernel hint for how a mapping will be touched.
type AccessPattern int

const (
	AccessNormal AccessPattern = iota
	AccessRandom
	AccessWillNeed
	AccessDontNeed
)

// Mapping is an anonymous read-write memory region.
// It owns the underlying byte slice and is responsible for unmapping it.
type Mapping struct {
	data   []byte
	closed atomic.Bool
	// unmap is the platform-specific function to release the memory.
	unmap func([]byte) error
}

// MapAnon maps size bytes of zeroed, private, read-write memory.
func MapAnon(size int) (*Mapping, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	data, unmapFunc, err := osMapAnon(size)
	if err != nil {
		return nil, err
	}

	return &Mapping{
		data:  data,
		unmap: unmapFunc,
	}, nil
}

// Bytes returns the mapped region. It is nil after Close.
func (m *Mapping) Bytes() []byte {
	if m.closed.Load() {
		return nil
	}
	return m.data
}

// Len returns the size of the mapping in bytes.
func (m *Mapping) Len() int {
	return len(m.data)
}

// Closed reports whether Close has been called.
func (m *Mapping) Closed() bool {
	return m.closed.Load()
}

// Advise passes an access hint to the kernel. Hints are advisory only.
func (m *Mapping) Advise(pattern AccessPattern) error {
	if m.closed.Load() {
		return ErrClosed
	}
	return osAdvise(m.data, pattern)
}

// Close unmaps the memory. It is idempotent.
func (m *Mapping) Close() error {
	if m.closed.Swap(true) {
		return nil // Already closed
	}
	if m.unmap != nil && m.data != nil {
		return m.unmap(m.data)
	}
	return nil
}
