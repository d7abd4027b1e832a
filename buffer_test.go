package netbuf_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/hupe1980/netbuf"
	"github.com/hupe1980/netbuf/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuffer(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		b := netbuf.NewBuffer(64)
		defer b.Release()

		assert.Equal(t, 0, b.Len())
		assert.Equal(t, 64, b.Cap())
		assert.Equal(t, 64, b.Available())
		assert.True(t, b.IsEmpty())
		assert.False(t, b.IsPooled())
	})

	t.Run("invalid capacity", func(t *testing.T) {
		for _, c := range []int{0, -8, 7, 12, netbuf.MaxCapacity + 1} {
			assert.Panics(t, func() { netbuf.NewBuffer(c) }, "capacity %d", c)
		}
	})
}

func TestBuffer_Append(t *testing.T) {
	b := netbuf.NewBuffer(16)
	defer b.Release()

	assert.True(t, b.Append([]byte("hello")))
	assert.True(t, b.Append([]byte(" world")))
	assert.Equal(t, "hello world", string(b.Bytes()))

	t.Run("no mutation on failure", func(t *testing.T) {
		before := append([]byte(nil), b.Bytes()...)
		assert.False(t, b.Append([]byte("123456")))
		assert.Equal(t, before, b.Bytes())
		assert.Equal(t, 11, b.Len())
	})

	t.Run("exact fit", func(t *testing.T) {
		assert.True(t, b.Append([]byte("12345")))
		assert.Equal(t, 16, b.Len())
		assert.False(t, b.Append([]byte{0}))
		assert.True(t, b.Append(nil))
	})
}

func TestBuffer_Repeat(t *testing.T) {
	b := netbuf.NewBuffer(8)
	defer b.Release()

	assert.True(t, b.Repeat(3, 0xAA))
	assert.Equal(t, []byte{0xAA, 0xAA, 0xAA}, b.Bytes())

	assert.False(t, b.Repeat(6, 0xBB))
	assert.Equal(t, 3, b.Len())

	assert.False(t, b.Repeat(-1, 0))
	assert.True(t, b.Repeat(5, 0))
	assert.Equal(t, []byte{0xAA, 0xAA, 0xAA, 0, 0, 0, 0, 0}, b.Bytes())
}

func TestBuffer_Resize(t *testing.T) {
	b := netbuf.NewBuffer(8)
	defer b.Release()

	b.Resize(4, 0x11)
	assert.Equal(t, []byte{0x11, 0x11, 0x11, 0x11}, b.Bytes())

	// Shrinking does not zero; growing fills only the new tail.
	b.Resize(2, 0x22)
	assert.Equal(t, []byte{0x11, 0x11}, b.Bytes())
	b.Resize(5, 0x33)
	assert.Equal(t, []byte{0x11, 0x11, 0x33, 0x33, 0x33}, b.Bytes())

	b.Resize(8, 0)
	assert.Equal(t, 8, b.Len())

	assert.Panics(t, func() { b.Resize(9, 0) })
	assert.Panics(t, func() { b.Resize(-1, 0) })
	assert.Equal(t, 8, b.Len())
}

func TestBuffer_ClearAndResize(t *testing.T) {
	b := netbuf.NewBuffer(8)
	defer b.Release()

	require.True(t, b.Append([]byte{1, 2, 3, 4, 5}))
	b.ClearAndResize(3, 0xFF)
	assert.Equal(t, []byte{0xFF, 0xFF, 0xFF}, b.Bytes())

	b.ClearAndResize(0, 0)
	assert.True(t, b.IsEmpty())

	assert.Panics(t, func() { b.ClearAndResize(16, 0) })
}

func TestBuffer_Clear(t *testing.T) {
	b := netbuf.NewBuffer(8)
	defer b.Release()

	require.True(t, b.Append([]byte{9, 9, 9}))
	b.Clear()
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 8, b.Cap())

	// Memory is untouched.
	assert.Equal(t, []byte{9, 9, 9}, b.Bytes()[:3])
}

func TestBuffer_CopyWithin(t *testing.T) {
	b := netbuf.NewBuffer(8)
	defer b.Release()

	require.True(t, b.Append([]byte{0, 1, 2, 3, 4, 5}))

	b.CopyWithin(0, 3, 2) // overlapping
	assert.Equal(t, []byte{0, 1, 0, 1, 2, 5}, b.Bytes())

	assert.Panics(t, func() { b.CopyWithin(4, 7, 0) })
	assert.Panics(t, func() { b.CopyWithin(0, 3, 4) })
	assert.Panics(t, func() { b.CopyWithin(3, 2, 0) })
}

func TestBuffer_Write(t *testing.T) {
	b := netbuf.NewBuffer(8)
	defer b.Release()

	n, err := b.Write([]byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = b.WriteString("defg")
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	require.NoError(t, b.WriteByte('h'))
	assert.Equal(t, "abcdefgh", string(b.Bytes()))

	t.Run("insufficient capacity", func(t *testing.T) {
		n, err := b.Write([]byte("x"))
		assert.Zero(t, n)
		assert.ErrorIs(t, err, netbuf.ErrCapacityExceeded)

		var ce *netbuf.CapacityError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, 1, ce.Requested)
		assert.Equal(t, 0, ce.Available)

		_, err = b.WriteString("y")
		assert.ErrorIs(t, err, netbuf.ErrCapacityExceeded)
		assert.ErrorIs(t, b.WriteByte('z'), netbuf.ErrCapacityExceeded)

		assert.Equal(t, "abcdefgh", string(b.Bytes()))
	})
}

func TestBuffer_WriteTo(t *testing.T) {
	b := netbuf.NewBuffer(16)
	defer b.Release()

	require.True(t, b.Append([]byte("datagram")))

	var dst bytes.Buffer
	n, err := b.WriteTo(&dst)
	require.NoError(t, err)
	assert.Equal(t, int64(8), n)
	assert.Equal(t, "datagram", dst.String())

	// Content is not consumed.
	assert.Equal(t, 8, b.Len())
}

func TestBuffer_FillFrom(t *testing.T) {
	b := netbuf.NewBuffer(8)
	defer b.Release()

	require.True(t, b.Append([]byte("ab")))

	n, err := b.FillFrom(strings.NewReader("cdefghijkl"))
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, "abcdefgh", string(b.Bytes()))

	_, err = b.FillFrom(strings.NewReader("more"))
	assert.ErrorIs(t, err, netbuf.ErrCapacityExceeded)

	b.Clear()
	_, err = b.FillFrom(strings.NewReader(""))
	assert.ErrorIs(t, err, io.EOF)
	assert.True(t, b.IsEmpty())
}

func TestBuffer_RoundTrip(t *testing.T) {
	rng := testutil.NewRNG(4711)

	for _, n := range []int{0, 1, 63, 64} {
		src := rng.Bytes(n)
		b := netbuf.NewBuffer(64)
		require.True(t, b.Append(src))
		assert.Equal(t, src, append([]byte{}, b.Bytes()...))
		b.Release()
	}
}

func TestBuffer_Clone(t *testing.T) {
	arena, err := netbuf.NewArena(32, 2)
	require.NoError(t, err)
	defer arena.Close()

	orig := arena.Get()
	require.True(t, orig.Append([]byte("payload")))

	clone := orig.Clone()
	assert.False(t, clone.IsPooled())
	assert.Equal(t, orig.Cap(), clone.Cap())
	assert.True(t, orig.Equal(clone))
	assert.Zero(t, orig.Compare(clone))

	// Independent memory.
	clone.Bytes()[0] = 'P'
	assert.Equal(t, "payload", string(orig.Bytes()))
	require.True(t, clone.Append([]byte("!")))
	assert.Equal(t, 7, orig.Len())

	// Releasing the clone does not return a slot.
	assert.Equal(t, 1, arena.PoolRemaining())
	clone.Release()
	assert.Equal(t, 1, arena.PoolRemaining())
	orig.Release()
	assert.Equal(t, 2, arena.PoolRemaining())
}

func TestBuffer_EqualCompare(t *testing.T) {
	a := netbuf.NewBuffer(8)
	b := netbuf.NewBuffer(16)
	defer a.Release()
	defer b.Release()

	require.True(t, a.Append([]byte{1, 2}))
	require.True(t, b.Append([]byte{1, 2}))
	assert.True(t, a.Equal(b))

	require.True(t, b.Append([]byte{0}))
	assert.False(t, a.Equal(b))
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
}

func TestBuffer_String(t *testing.T) {
	b := netbuf.NewBuffer(8)
	require.True(t, b.Append([]byte{0xde, 0xad}))
	assert.Equal(t, "dead", b.String())

	b.Release()
	assert.Equal(t, "<released>", b.String())
}

func TestBuffer_Release(t *testing.T) {
	t.Run("double release panics", func(t *testing.T) {
		b := netbuf.NewBuffer(8)
		b.Release()
		assert.Panics(t, func() { b.Release() })
	})

	t.Run("use after release panics", func(t *testing.T) {
		b := netbuf.NewBuffer(8)
		b.Release()
		assert.Panics(t, func() { b.Append([]byte{1}) })
		assert.Panics(t, func() { _ = b.Len() })
		assert.Panics(t, func() { _ = b.Bytes() })
	})

	t.Run("zero value", func(t *testing.T) {
		var b netbuf.Buffer
		assert.Equal(t, 0, b.Cap())
		assert.False(t, b.Append([]byte{1}))
		assert.True(t, b.Append(nil))
		c := b.Clone()
		assert.Equal(t, 0, c.Cap())
		b.Release()
	})
}

func BenchmarkBuffer_Append(b *testing.B) {
	buf := netbuf.NewBuffer(2048)
	defer buf.Release()
	payload := testutil.Pattern(1400)

	b.ReportAllocs()
	b.SetBytes(int64(len(payload)))
	for b.Loop() {
		buf.Clear()
		buf.Append(payload)
	}
}
