package wire

import (
	"errors"
	"io"
)

// Reader reads a Buffer from a cursor. It implements io.Reader and
// io.ByteReader so stream decoders can run over a received message.
type Reader struct {
	buf    *Buffer
	cursor *int
}

// NewReader returns a Reader over buf starting at *cursor. The cursor is
// shared: reads advance it, and changes made by the caller are observed.
func NewReader(buf *Buffer, cursor *int) *Reader {
	return &Reader{buf: buf, cursor: cursor}
}

// Read fills p completely or fails with ErrOutOfBounds without advancing.
// At the end of the buffer it returns io.EOF.
func (r *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if *r.cursor >= r.buf.Len() {
		return 0, io.EOF
	}
	b, err := r.buf.ReadBytes(len(p), r.cursor)
	if err != nil {
		return 0, err
	}
	return copy(p, b), nil
}

// ReadByte implements io.ByteReader.
func (r *Reader) ReadByte() (byte, error) {
	c, err := r.buf.ReadU8(r.cursor)
	if errors.Is(err, ErrOutOfBounds) {
		return 0, io.EOF
	}
	return c, err
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return max(r.buf.Len()-*r.cursor, 0)
}
