// Package varint implements the 7-bit variable length integer format used on
// the wire.
//
// Groups are emitted least significant first. Unlike encoding/binary's
// uvarint, the high bit marks the LAST byte of an encoding rather than a
// continuation, so the two formats are not interchangeable.
package varint

import (
	"errors"
	"io"
)

// MaxLen is the maximum encoded length of a uint64.
const MaxLen = 10

// ErrMalformed is returned when no terminating byte appears within MaxLen bytes.
var ErrMalformed = errors.New("varint: malformed encoding")

// Len returns the encoded length of v.
func Len(v uint64) int {
	n := 1
	for v > 0x7f {
		v >>= 7
		n++
	}
	return n
}

// Put encodes v into dst and returns the number of bytes written.
// It panics if dst is too small; MaxLen bytes always suffice.
func Put(dst []byte, v uint64) int {
	i := 0
	for v > 0x7f {
		dst[i] = byte(v) & 0x7f
		v >>= 7
		i++
	}
	dst[i] = byte(v) | 0x80
	return i + 1
}

// Append appends the encoding of v to dst.
func Append(dst []byte, v uint64) []byte {
	var buf [MaxLen]byte
	n := Put(buf[:], v)
	return append(dst, buf[:n]...)
}

// Write writes the encoding of v to w in a single call.
func Write(w io.Writer, v uint64) (int, error) {
	var buf [MaxLen]byte
	return w.Write(buf[:Put(buf[:], v)])
}

// Decode decodes a value from the front of b. It returns the value and the
// number of bytes consumed; ok is false if b is truncated or malformed.
func Decode(b []byte) (v uint64, n int, ok bool) {
	var shift uint
	for i := 0; i < len(b) && i < MaxLen; i++ {
		c := b[i]
		if c <= 0x7f {
			v |= uint64(c) << shift
			shift += 7
			continue
		}
		v |= uint64(c&0x7f) << shift
		return v, i + 1, true
	}
	return 0, 0, false
}

// Read decodes a value from r one byte at a time.
// It returns the value and the number of bytes consumed.
func Read(r io.ByteReader) (uint64, int, error) {
	var v uint64
	var shift uint
	for i := 0; i < MaxLen; i++ {
		c, err := r.ReadByte()
		if err != nil {
			if i > 0 && err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return 0, i, err
		}
		if c <= 0x7f {
			v |= uint64(c) << shift
			shift += 7
			continue
		}
		v |= uint64(c&0x7f) << shift
		return v, i + 1, nil
	}
	return 0, MaxLen, ErrMalformed
}

// ReadFrom decodes a value from a plain io.Reader.
func ReadFrom(r io.Reader) (uint64, int, error) {
	if br, ok := r.(io.ByteReader); ok {
		return Read(br)
	}
	return Read(byteReader{r})
}

type byteReader struct{ r io.Reader }

func (b byteReader) ReadByte() (byte, error) {
	var buf [1]byte
	if _, err := io.ReadFull(b.r, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}
