package netbuf

import (
	"errors"
	"fmt"
)

var (
	// ErrCapacityExceeded is matched by every error caused by writing past a
	// buffer's fixed capacity.
	ErrCapacityExceeded = errors.New("netbuf: insufficient capacity")
)

// CapacityError reports a write that did not fit.
// Nothing was written when it is returned.
type CapacityError struct {
	Requested int
	Available int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("netbuf: insufficient capacity: requested %d bytes, %d available", e.Requested, e.Available)
}

// Unwrap returns ErrCapacityExceeded.
func (e *CapacityError) Unwrap() error { return ErrCapacityExceeded }

func capacityError(requested, available int) error {
	return &CapacityError{Requested: requested, Available: available}
}
