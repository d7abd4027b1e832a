package netbuf

import (
	"bytes"
	"fmt"
	"io"

	"github.com/hupe1980/netbuf/codec/hex"
)

// MaxCapacity is the largest capacity a Buffer may have.
const MaxCapacity = 0x7fffffff

// Buffer is a byte buffer whose capacity is fixed when it is created.
//
// A Buffer is either standalone, owning its memory outright, or pooled,
// occupying one slot of an Arena. Which one is decided at creation and
// never changes. Release must be called exactly once when the buffer is no
// longer needed; for pooled buffers this returns the slot to the arena.
//
// A Buffer may be handed between goroutines but must not be used by two
// goroutines at once. Slices returned by Bytes must not be retained past
// Release.
type Buffer struct {
	_ noCopy

	data []byte // len is the logical length, cap the fixed capacity

	owner    *arenaInner // nil for standalone buffers
	slot     uint32
	released bool
}

// NewBuffer allocates a standalone buffer with the given capacity.
// It panics unless 0 < capacity <= MaxCapacity and capacity is a multiple of 8.
func NewBuffer(capacity int) *Buffer {
	checkCapacity(capacity)
	return &Buffer{data: make([]byte, 0, capacity)}
}

func checkCapacity(capacity int) {
	if capacity <= 0 || capacity > MaxCapacity || capacity%8 != 0 {
		panic(fmt.Sprintf("netbuf: invalid buffer capacity %d: must be a positive multiple of 8 no greater than %d", capacity, MaxCapacity))
	}
}

func (b *Buffer) live() {
	if b.released {
		panic("netbuf: use of released buffer")
	}
}

// Len returns the number of bytes in the buffer.
func (b *Buffer) Len() int {
	b.live()
	return len(b.data)
}

// Cap returns the fixed capacity.
func (b *Buffer) Cap() int {
	b.live()
	return cap(b.data)
}

// Available returns the number of bytes that can still be appended.
func (b *Buffer) Available() int {
	b.live()
	return cap(b.data) - len(b.data)
}

// IsEmpty reports whether Len is zero.
func (b *Buffer) IsEmpty() bool { return b.Len() == 0 }

// IsPooled reports whether the buffer occupies an arena slot.
func (b *Buffer) IsPooled() bool {
	b.live()
	return b.owner != nil
}

// Bytes returns the logical content. The slice aliases the buffer and is
// valid until the next mutating call or Release.
func (b *Buffer) Bytes() []byte {
	b.live()
	return b.data
}

// Clear sets the length to zero. Memory is not zeroed.
func (b *Buffer) Clear() {
	b.live()
	b.data = b.data[:0]
}

// Append appends p and reports whether it fit. If it does not fit the
// buffer is left unchanged.
func (b *Buffer) Append(p []byte) bool {
	b.live()
	if len(p) > cap(b.data)-len(b.data) {
		return false
	}
	b.data = append(b.data, p...)
	return true
}

// Repeat appends n copies of v and reports whether they fit. If they do
// not fit the buffer is left unchanged.
func (b *Buffer) Repeat(n int, v byte) bool {
	b.live()
	if n < 0 || n > cap(b.data)-len(b.data) {
		return false
	}
	old := len(b.data)
	b.data = b.data[:old+n]
	fillBytes(b.data[old:], v)
	return true
}

// Resize sets the length to n. Bytes exposed by growing are set to fill;
// shrinking leaves memory untouched. It panics if n is negative or larger
// than Cap.
func (b *Buffer) Resize(n int, fill byte) {
	b.live()
	if n < 0 || n > cap(b.data) {
		panic(fmt.Sprintf("netbuf: resize to %d exceeds capacity %d", n, cap(b.data)))
	}
	old := len(b.data)
	b.data = b.data[:n]
	if n > old {
		fillBytes(b.data[old:], fill)
	}
}

// ClearAndResize sets the length to n and every byte to fill.
// It panics if n is negative or larger than Cap.
func (b *Buffer) ClearAndResize(n int, fill byte) {
	b.live()
	if n < 0 || n > cap(b.data) {
		panic(fmt.Sprintf("netbuf: resize to %d exceeds capacity %d", n, cap(b.data)))
	}
	b.data = b.data[:n]
	fillBytes(b.data, fill)
}

// CopyWithin copies Bytes()[start:end] to offset dest. The ranges may
// overlap. It panics if either range falls outside the logical content.
func (b *Buffer) CopyWithin(start, end, dest int) {
	b.live()
	if start < 0 || end < start || end > len(b.data) || dest < 0 || dest > len(b.data)-(end-start) {
		panic(fmt.Sprintf("netbuf: copy [%d:%d] to %d out of range for length %d", start, end, dest, len(b.data)))
	}
	copy(b.data[dest:], b.data[start:end])
}

// Write implements io.Writer. Unlike a short write, a write that does not
// fit writes nothing and returns a *CapacityError.
func (b *Buffer) Write(p []byte) (int, error) {
	if !b.Append(p) {
		return 0, capacityError(len(p), b.Available())
	}
	return len(p), nil
}

// WriteString is Write for strings.
func (b *Buffer) WriteString(s string) (int, error) {
	b.live()
	if len(s) > cap(b.data)-len(b.data) {
		return 0, capacityError(len(s), cap(b.data)-len(b.data))
	}
	b.data = append(b.data, s...)
	return len(s), nil
}

// WriteByte implements io.ByteWriter.
func (b *Buffer) WriteByte(c byte) error {
	b.live()
	if len(b.data) == cap(b.data) {
		return capacityError(1, 0)
	}
	b.data = append(b.data, c)
	return nil
}

// WriteTo implements io.WriterTo. The content is written in a single call
// and is not consumed, so a datagram can be sent to several destinations.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	b.live()
	n, err := w.Write(b.data)
	return int64(n), err
}

// FillFrom performs one Read from r into the free capacity and extends the
// length by the bytes read. It suits datagram sockets where a single read
// returns one packet. If the buffer is full it returns a *CapacityError
// without reading.
func (b *Buffer) FillFrom(r io.Reader) (int, error) {
	b.live()
	old := len(b.data)
	if old == cap(b.data) {
		return 0, capacityError(1, 0)
	}
	n, err := r.Read(b.data[old:cap(b.data)])
	if n > 0 {
		b.data = b.data[:old+n]
	}
	return n, err
}

// Clone returns a standalone buffer with the same capacity and content.
// The clone never shares memory or arena ownership with b.
func (b *Buffer) Clone() *Buffer {
	b.live()
	if cap(b.data) == 0 {
		return &Buffer{}
	}
	c := NewBuffer(cap(b.data))
	c.data = append(c.data, b.data...)
	return c
}

// Equal reports whether b and o hold the same content.
// Capacity and pooling are not compared.
func (b *Buffer) Equal(o *Buffer) bool {
	return bytes.Equal(b.Bytes(), o.Bytes())
}

// Compare compares content lexicographically.
func (b *Buffer) Compare(o *Buffer) int {
	return bytes.Compare(b.Bytes(), o.Bytes())
}

// String returns the content as lowercase hex.
func (b *Buffer) String() string {
	if b.released {
		return "<released>"
	}
	return hex.Encode(b.data)
}

// Release frees a standalone buffer or returns a pooled one to its arena.
// The buffer must not be used afterwards. Releasing twice panics.
func (b *Buffer) Release() {
	if b.released {
		panic("netbuf: buffer released twice")
	}
	b.released = true
	owner, slot := b.owner, b.slot
	b.data = nil
	b.owner = nil
	if owner != nil {
		owner.put(slot)
	}
}

func fillBytes(p []byte, v byte) {
	if v == 0 {
		clear(p)
		return
	}
	for i := range p {
		p[i] = v
	}
}

// noCopy lets go vet flag Buffer values copied after first use.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
