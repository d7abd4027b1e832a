// Package wire provides a bounds-checked buffer for assembling and parsing
// network messages.
//
// A Buffer has a capacity fixed at construction and a current size. Appends
// grow the size up to the capacity; reads take an explicit cursor so the same
// buffer can be parsed by several readers. Multi-byte integers are big-endian.
//
// Every failing operation returns ErrOutOfBounds and leaves the buffer
// unchanged.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/hupe1980/netbuf/codec/hex"
	"github.com/hupe1980/netbuf/codec/varint"
	"github.com/hupe1980/netbuf/internal/conv"
)

// ErrOutOfBounds is returned when an operation would exceed the buffer's
// capacity or read past its size.
var ErrOutOfBounds = errors.New("wire: out of bounds")

// Buffer is a fixed-capacity message buffer.
//
// The zero value has capacity zero. A Buffer must not be copied after first
// use; pass *Buffer.
type Buffer struct {
	data []byte // len is the size, cap the capacity
}

// New returns an empty, zeroed buffer of the given capacity.
// It panics if capacity is negative.
func New(capacity int) *Buffer {
	if capacity < 0 {
		panic(fmt.Sprintf("wire: negative capacity %d", capacity))
	}
	return &Buffer{data: make([]byte, 0, capacity)}
}

// FromBytes returns a buffer of the given capacity holding a copy of b.
func FromBytes(capacity int, b []byte) (*Buffer, error) {
	if len(b) > capacity {
		return nil, fmt.Errorf("%w: %d bytes exceed capacity %d", ErrOutOfBounds, len(b), capacity)
	}
	w := New(capacity)
	w.data = append(w.data, b...)
	return w, nil
}

// Len returns the current size.
func (w *Buffer) Len() int { return len(w.data) }

// Cap returns the fixed capacity.
func (w *Buffer) Cap() int { return cap(w.data) }

// Remaining returns the number of bytes that can still be appended.
func (w *Buffer) Remaining() int { return cap(w.data) - len(w.data) }

// IsEmpty reports whether the size is zero.
func (w *Buffer) IsEmpty() bool { return len(w.data) == 0 }

// Bytes returns the contents. The slice aliases the buffer.
func (w *Buffer) Bytes() []byte { return w.data[:len(w.data):len(w.data)] }

// BytesAfter returns the contents from start to the end.
func (w *Buffer) BytesAfter(start int) ([]byte, error) {
	return w.ByteRange(start, len(w.data))
}

// ByteRange returns the contents in [start, end).
func (w *Buffer) ByteRange(start, end int) ([]byte, error) {
	if start < 0 || start > end || end > len(w.data) {
		return nil, fmt.Errorf("%w: range [%d, %d) of %d", ErrOutOfBounds, start, end, len(w.data))
	}
	return w.data[start:end:end], nil
}

// Clear zeroes the used bytes and sets the size to zero.
func (w *Buffer) Clear() {
	clear(w.data)
	w.data = w.data[:0]
}

// SetTo replaces the contents with b. It panics if b exceeds the capacity.
func (w *Buffer) SetTo(b []byte) {
	if len(b) > cap(w.data) {
		panic(fmt.Sprintf("wire: %d bytes exceed capacity %d", len(b), cap(w.data)))
	}
	w.data = append(w.data[:0], b...)
}

// SetSize sets the size to n. Bytes exposed by growing are zeroed.
// It panics if n is negative or exceeds the capacity.
func (w *Buffer) SetSize(n int) {
	if n < 0 || n > cap(w.data) {
		panic(fmt.Sprintf("wire: size %d outside capacity %d", n, cap(w.data)))
	}
	old := len(w.data)
	w.data = w.data[:n]
	if n > old {
		clear(w.data[old:])
	}
}

// grow extends the size by n and returns the new region.
func (w *Buffer) grow(n int) ([]byte, error) {
	if n < 0 || n > cap(w.data)-len(w.data) {
		return nil, fmt.Errorf("%w: %d bytes, %d remaining", ErrOutOfBounds, n, cap(w.data)-len(w.data))
	}
	start := len(w.data)
	w.data = w.data[:start+n]
	return w.data[start:], nil
}

// AppendBytes appends b.
func (w *Buffer) AppendBytes(b []byte) error {
	dst, err := w.grow(len(b))
	if err != nil {
		return err
	}
	copy(dst, b)
	return nil
}

// AppendBytesGet grows the size by n and returns the new region for the
// caller to fill. Its previous contents are unspecified.
func (w *Buffer) AppendBytesGet(n int) ([]byte, error) {
	return w.grow(n)
}

// AppendPadding appends count copies of b.
func (w *Buffer) AppendPadding(b byte, count int) error {
	dst, err := w.grow(count)
	if err != nil {
		return err
	}
	for i := range dst {
		dst[i] = b
	}
	return nil
}

// AppendU8 appends a single byte.
func (w *Buffer) AppendU8(v uint8) error {
	dst, err := w.grow(1)
	if err != nil {
		return err
	}
	dst[0] = v
	return nil
}

// AppendU16 appends v big-endian.
func (w *Buffer) AppendU16(v uint16) error {
	dst, err := w.grow(2)
	if err != nil {
		return err
	}
	binary.BigEndian.PutUint16(dst, v)
	return nil
}

// AppendU32 appends v big-endian.
func (w *Buffer) AppendU32(v uint32) error {
	dst, err := w.grow(4)
	if err != nil {
		return err
	}
	binary.BigEndian.PutUint32(dst, v)
	return nil
}

// AppendU64 appends v big-endian.
func (w *Buffer) AppendU64(v uint64) error {
	dst, err := w.grow(8)
	if err != nil {
		return err
	}
	binary.BigEndian.PutUint64(dst, v)
	return nil
}

// AppendVarint appends v in varint form.
func (w *Buffer) AppendVarint(v uint64) error {
	dst, err := w.grow(varint.Len(v))
	if err != nil {
		return err
	}
	varint.Put(dst, v)
	return nil
}

// AppendLengthPrefixed appends b preceded by its varint length.
func (w *Buffer) AppendLengthPrefixed(b []byte) error {
	n := uint64(len(b))
	dst, err := w.grow(varint.Len(n) + len(b))
	if err != nil {
		return err
	}
	copy(dst[varint.Put(dst, n):], b)
	return nil
}

// Write implements io.Writer. Writes that do not fit fail whole.
func (w *Buffer) Write(p []byte) (int, error) {
	if err := w.AppendBytes(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// WriteByte implements io.ByteWriter.
func (w *Buffer) WriteByte(c byte) error { return w.AppendU8(c) }

func (w *Buffer) span(at, n int) ([]byte, error) {
	if at < 0 || n > len(w.data)-at {
		return nil, fmt.Errorf("%w: %d bytes at %d of %d", ErrOutOfBounds, n, at, len(w.data))
	}
	return w.data[at : at+n], nil
}

// U8At returns the byte at offset at.
func (w *Buffer) U8At(at int) (uint8, error) {
	b, err := w.span(at, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// U16At returns the big-endian uint16 at offset at.
func (w *Buffer) U16At(at int) (uint16, error) {
	b, err := w.span(at, 2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// U32At returns the big-endian uint32 at offset at.
func (w *Buffer) U32At(at int) (uint32, error) {
	b, err := w.span(at, 4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// U64At returns the big-endian uint64 at offset at.
func (w *Buffer) U64At(at int) (uint64, error) {
	b, err := w.span(at, 8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// ReadBytes returns n bytes at *cursor and advances it. The slice aliases
// the buffer.
func (w *Buffer) ReadBytes(n int, cursor *int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative length %d", ErrOutOfBounds, n)
	}
	b, err := w.span(*cursor, n)
	if err != nil {
		return nil, err
	}
	*cursor += n
	return b[:n:n], nil
}

// ReadU8 reads one byte at *cursor and advances it.
func (w *Buffer) ReadU8(cursor *int) (uint8, error) {
	v, err := w.U8At(*cursor)
	if err != nil {
		return 0, err
	}
	*cursor++
	return v, nil
}

// ReadU16 reads a big-endian uint16 at *cursor and advances it.
func (w *Buffer) ReadU16(cursor *int) (uint16, error) {
	v, err := w.U16At(*cursor)
	if err != nil {
		return 0, err
	}
	*cursor += 2
	return v, nil
}

// ReadU32 reads a big-endian uint32 at *cursor and advances it.
func (w *Buffer) ReadU32(cursor *int) (uint32, error) {
	v, err := w.U32At(*cursor)
	if err != nil {
		return 0, err
	}
	*cursor += 4
	return v, nil
}

// ReadU64 reads a big-endian uint64 at *cursor and advances it.
func (w *Buffer) ReadU64(cursor *int) (uint64, error) {
	v, err := w.U64At(*cursor)
	if err != nil {
		return 0, err
	}
	*cursor += 8
	return v, nil
}

// ReadVarint decodes a varint at *cursor and advances it.
func (w *Buffer) ReadVarint(cursor *int) (uint64, error) {
	at := *cursor
	if at < 0 || at > len(w.data) {
		return 0, fmt.Errorf("%w: cursor %d of %d", ErrOutOfBounds, at, len(w.data))
	}
	v, n, ok := varint.Decode(w.data[at:])
	if !ok {
		return 0, fmt.Errorf("%w: varint at %d", ErrOutOfBounds, at)
	}
	*cursor += n
	return v, nil
}

// ReadLengthPrefixed reads a varint length followed by that many bytes.
// The cursor only advances if both parts are present.
func (w *Buffer) ReadLengthPrefixed(cursor *int) ([]byte, error) {
	c := *cursor
	n, err := w.ReadVarint(&c)
	if err != nil {
		return nil, err
	}
	l, err := conv.Uint64ToInt(n)
	if err != nil {
		return nil, fmt.Errorf("%w: length %d", ErrOutOfBounds, n)
	}
	b, err := w.ReadBytes(l, &c)
	if err != nil {
		return nil, err
	}
	*cursor = c
	return b, nil
}

// String returns the contents as lowercase hex.
func (w *Buffer) String() string { return hex.Encode(w.data) }
