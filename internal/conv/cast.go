package conv

import (
	"errors"
	"fmt"
	"math"
)

// ErrOverflow is wrapped by every conversion failure.
var ErrOverflow = errors.New("integer overflow")

// IntToUint32 converts int to uint32 safely.
func IntToUint32(v int) (uint32, error) {
	if v < 0 {
		return 0, fmt.Errorf("%w: %d cannot be converted to uint32 (negative)", ErrOverflow, v)
	}
	// On 64-bit systems, int can exceed uint32 max; on 32-bit, this is always false
	if uint64(v) > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %d cannot be converted to uint32 (too large)", ErrOverflow, v)
	}
	return uint32(v), nil
}

// IntToUint16 converts int to uint16 safely.
func IntToUint16(v int) (uint16, error) {
	if v < 0 || v > math.MaxUint16 {
		return 0, fmt.Errorf("%w: %d cannot be converted to uint16", ErrOverflow, v)
	}
	return uint16(v), nil
}

// Uint64ToInt converts uint64 to int safely.
func Uint64ToInt(v uint64) (int, error) {
	if v > uint64(math.MaxInt) {
		return 0, fmt.Errorf("%w: %d cannot be converted to int (too large)", ErrOverflow, v)
	}
	return int(v), nil
}

// MulInt multiplies two non-negative ints, failing instead of wrapping.
func MulInt(a, b int) (int, error) {
	if a < 0 || b < 0 {
		return 0, fmt.Errorf("%w: %d * %d (negative operand)", ErrOverflow, a, b)
	}
	if a != 0 && b > math.MaxInt/a {
		return 0, fmt.Errorf("%w: %d * %d (too large)", ErrOverflow, a, b)
	}
	return a * b, nil
}
