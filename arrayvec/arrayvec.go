// Package arrayvec provides a vector whose capacity is fixed at construction.
//
// An ArrayVec allocates its backing array once and never grows, which makes
// it a good fit for bounded per-packet scratch lists: the memory cost is
// known up front and overflow is an explicit, checked condition.
package arrayvec

import (
	"cmp"
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/hupe1980/netbuf/codec"
)

// ErrOutOfCapacity is matched by every error caused by exceeding capacity.
var ErrOutOfCapacity = errors.New("arrayvec: out of capacity")

// OutOfCapacityError carries the value a full vector rejected.
type OutOfCapacityError[T any] struct {
	Value T
}

func (e *OutOfCapacityError[T]) Error() string { return ErrOutOfCapacity.Error() }

// Unwrap returns ErrOutOfCapacity.
func (e *OutOfCapacityError[T]) Unwrap() error { return ErrOutOfCapacity }

// ArrayVec is a fixed-capacity vector. The zero value has capacity zero.
type ArrayVec[T any] struct {
	items []T // len is the length, cap the fixed capacity
}

// New returns an empty vector with the given capacity.
// It panics if capacity is negative.
func New[T any](capacity int) *ArrayVec[T] {
	if capacity < 0 {
		panic(fmt.Sprintf("arrayvec: negative capacity %d", capacity))
	}
	return &ArrayVec[T]{items: make([]T, 0, capacity)}
}

// FromSlice copies s into a new vector with the given capacity.
func FromSlice[T any](capacity int, s []T) (*ArrayVec[T], error) {
	v := New[T](capacity)
	if err := v.TryPushSlice(s); err != nil {
		return nil, err
	}
	return v, nil
}

// Len returns the number of elements.
func (v *ArrayVec[T]) Len() int { return len(v.items) }

// Cap returns the fixed capacity.
func (v *ArrayVec[T]) Cap() int { return cap(v.items) }

// Remaining returns the number of elements that can still be pushed.
func (v *ArrayVec[T]) Remaining() int { return cap(v.items) - len(v.items) }

// IsEmpty reports whether Len is zero.
func (v *ArrayVec[T]) IsEmpty() bool { return len(v.items) == 0 }

// IsFull reports whether Remaining is zero.
func (v *ArrayVec[T]) IsFull() bool { return len(v.items) == cap(v.items) }

// Push appends x. It panics if the vector is full.
func (v *ArrayVec[T]) Push(x T) {
	if err := v.TryPush(x); err != nil {
		panic(err)
	}
}

// TryPush appends x, or returns an *OutOfCapacityError holding x if full.
func (v *ArrayVec[T]) TryPush(x T) error {
	if len(v.items) == cap(v.items) {
		return &OutOfCapacityError[T]{Value: x}
	}
	v.items = append(v.items, x)
	return nil
}

// PushSlice appends all of s. It panics if s does not fit; nothing is
// appended in that case.
func (v *ArrayVec[T]) PushSlice(s []T) {
	if err := v.TryPushSlice(s); err != nil {
		panic(err)
	}
}

// TryPushSlice appends all of s or nothing.
func (v *ArrayVec[T]) TryPushSlice(s []T) error {
	if len(s) > cap(v.items)-len(v.items) {
		return fmt.Errorf("%w: %d elements, %d remaining", ErrOutOfCapacity, len(s), cap(v.items)-len(v.items))
	}
	v.items = append(v.items, s...)
	return nil
}

// Pop removes and returns the last element.
func (v *ArrayVec[T]) Pop() (T, bool) {
	var zero T
	n := len(v.items)
	if n == 0 {
		return zero, false
	}
	x := v.items[n-1]
	v.items[n-1] = zero // drop the reference
	v.items = v.items[:n-1]
	return x, true
}

// First returns the first element.
func (v *ArrayVec[T]) First() (T, bool) {
	if len(v.items) == 0 {
		var zero T
		return zero, false
	}
	return v.items[0], true
}

// Last returns the last element.
func (v *ArrayVec[T]) Last() (T, bool) {
	if len(v.items) == 0 {
		var zero T
		return zero, false
	}
	return v.items[len(v.items)-1], true
}

// At returns the element at index i. It panics if i is out of range.
func (v *ArrayVec[T]) At(i int) T { return v.items[i] }

// Set replaces the element at index i. It panics if i is out of range.
func (v *ArrayVec[T]) Set(i int, x T) { v.items[i] = x }

// Clear removes all elements, zeroing them so they can be collected.
func (v *ArrayVec[T]) Clear() {
	clear(v.items)
	v.items = v.items[:0]
}

// Slice returns the elements. The slice aliases the vector; appending to
// it does not change the vector's length.
func (v *ArrayVec[T]) Slice() []T {
	return v.items[:len(v.items):len(v.items)]
}

// All yields index/element pairs in order.
func (v *ArrayVec[T]) All() iter.Seq2[int, T] {
	return slices.All(v.items)
}

// Backward yields index/element pairs from last to first.
func (v *ArrayVec[T]) Backward() iter.Seq2[int, T] {
	return slices.Backward(v.items)
}

// Clone returns a copy with the same capacity.
func (v *ArrayVec[T]) Clone() *ArrayVec[T] {
	c := New[T](cap(v.items))
	c.items = append(c.items, v.items...)
	return c
}

// Sort sorts v in ascending order.
func Sort[T cmp.Ordered](v *ArrayVec[T]) {
	slices.Sort(v.items)
}

// SortFunc sorts v with the given comparison.
func SortFunc[T any](v *ArrayVec[T], less func(a, b T) int) {
	slices.SortFunc(v.items, less)
}

// Equal reports whether a and b hold equal elements. Capacity is ignored.
func Equal[T comparable](a, b *ArrayVec[T]) bool {
	return slices.Equal(a.items, b.items)
}

// Compare compares a and b lexicographically.
func Compare[T cmp.Ordered](a, b *ArrayVec[T]) int {
	return slices.Compare(a.items, b.items)
}

// MarshalJSON encodes the elements as a JSON array.
func (v *ArrayVec[T]) MarshalJSON() ([]byte, error) {
	if v.items == nil {
		return []byte("[]"), nil
	}
	return codec.Default.Marshal(v.items)
}

// UnmarshalJSON decodes a JSON array, replacing the contents. A vector
// created with New keeps its capacity and rejects longer arrays; a zero
// value adopts the array length as its capacity.
func (v *ArrayVec[T]) UnmarshalJSON(data []byte) error {
	var items []T
	if err := codec.Default.Unmarshal(data, &items); err != nil {
		return err
	}
	if v.items == nil {
		v.items = make([]T, 0, len(items))
	}
	if len(items) > cap(v.items) {
		return fmt.Errorf("%w: %d elements, capacity %d", ErrOutOfCapacity, len(items), cap(v.items))
	}
	v.Clear()
	v.items = append(v.items, items...)
	return nil
}
