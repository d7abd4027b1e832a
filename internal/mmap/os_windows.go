//go:build windows

package mmap

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

func osMapAnon(size int) ([]byte, func([]byte) error, error) {
	// MEM_COMMIT is demand-paged: pages get physical backing on first touch,
	// which matches mmap behavior on Unix.
	addr, err := windows.VirtualAlloc(0, uintptr(size),
		windows.MEM_RESERVE|windows.MEM_COMMIT, windows.PAGE_READWRITE)
	if err != nil {
		return nil, nil, err
	}

	data := unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)

	return data, func([]byte) error {
		return windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
	}, nil
}

func osAdvise(data []byte, pattern AccessPattern) error {
	// No madvise equivalent worth wiring.
	_ = data
	_ = pattern
	return nil
}
