// Package mmap provides anonymous read-write memory mappings.
//
// # Overview
//
// Arenas carve many fixed-size buffers out of one contiguous region. The
// region is obtained from the operating system directly so that large pools
// live outside the Go heap and are returned to the OS in one call.
//
// # Usage
//
//	m, err := mmap.MapAnon(64 << 20)
//	if err != nil { ... }
//	defer m.Close()
//
//	data := m.Bytes()
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with MAP_ANON|MAP_PRIVATE
//   - Windows: VirtualAlloc with MEM_RESERVE|MEM_COMMIT
//
// # Thread Safety
//
// Close is idempotent and protected by atomic operations. Callers must
// ensure no goroutine touches Bytes() after Close returns.
package mmap
