package arrayvec

import (
	"fmt"

	"github.com/hupe1980/netbuf/codec/hex"
)

// ByteWriter adapts a byte vector to io.Writer and io.ByteWriter.
// A write that does not fit writes nothing.
type ByteWriter struct {
	V *ArrayVec[byte]
}

// NewByteWriter returns a writer over a new byte vector of the given capacity.
func NewByteWriter(capacity int) *ByteWriter {
	return &ByteWriter{V: New[byte](capacity)}
}

func (w *ByteWriter) Write(p []byte) (int, error) {
	if err := w.V.TryPushSlice(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// WriteByte implements io.ByteWriter.
func (w *ByteWriter) WriteByte(c byte) error {
	return w.V.TryPush(c)
}

// Bytes returns the written bytes.
func (w *ByteWriter) Bytes() []byte { return w.V.Slice() }

// String returns the written bytes as lowercase hex.
func (w *ByteWriter) String() string { return hex.Encode(w.V.Slice()) }

// Hex returns the elements of a byte vector as lowercase hex.
func Hex(v *ArrayVec[byte]) string { return hex.Encode(v.items) }

// String renders the elements with %v, e.g. "[1 2 3]".
func (v *ArrayVec[T]) String() string { return fmt.Sprint(v.items) }
