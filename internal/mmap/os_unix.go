//go:build unix

package mmap

import (
	"golang.org/x/sys/unix"
)

func osMapAnon(size int) ([]byte, func([]byte) error, error) {
	prot := unix.PROT_READ | unix.PROT_WRITE
	flags := unix.MAP_ANON | unix.MAP_PRIVATE

	data, err := unix.Mmap(-1, 0, size, prot, flags)
	if err != nil {
		return nil, nil, err
	}

	return data, unix.Munmap, nil
}

func osAdvise(data []byte, pattern AccessPattern) error {
	if len(data) == 0 {
		return nil
	}

	var advice int
	switch pattern {
	case AccessRandom:
		advice = unix.MADV_RANDOM
	case AccessWillNeed:
		advice = unix.MADV_WILLNEED
	case AccessDontNeed:
		advice = unix.MADV_DONTNEED
	default:
		advice = unix.MADV_NORMAL
	}

	// Anonymous mappings are always page-aligned, but keep EINVAL soft
	// since the hint is advisory.
	err := unix.Madvise(data, advice)
	if err == unix.EINVAL {
		return nil
	}
	return err
}
