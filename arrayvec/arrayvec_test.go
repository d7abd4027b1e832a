package arrayvec

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushPop(t *testing.T) {
	v := New[int](3)
	assert.True(t, v.IsEmpty())
	assert.Equal(t, 3, v.Cap())

	v.Push(1)
	v.Push(2)
	require.NoError(t, v.TryPush(3))
	assert.True(t, v.IsFull())
	assert.Equal(t, 0, v.Remaining())

	err := v.TryPush(4)
	assert.ErrorIs(t, err, ErrOutOfCapacity)
	var oc *OutOfCapacityError[int]
	require.True(t, errors.As(err, &oc))
	assert.Equal(t, 4, oc.Value)

	assert.Panics(t, func() { v.Push(5) })
	assert.Equal(t, []int{1, 2, 3}, v.Slice())

	first, ok := v.First()
	assert.True(t, ok)
	assert.Equal(t, 1, first)
	last, ok := v.Last()
	assert.True(t, ok)
	assert.Equal(t, 3, last)

	x, ok := v.Pop()
	assert.True(t, ok)
	assert.Equal(t, 3, x)
	assert.Equal(t, 2, v.Len())

	v.Clear()
	_, ok = v.Pop()
	assert.False(t, ok)
	_, ok = v.First()
	assert.False(t, ok)
	_, ok = v.Last()
	assert.False(t, ok)
}

func TestPushSlice(t *testing.T) {
	v := New[string](4)
	v.PushSlice([]string{"a", "b"})

	err := v.TryPushSlice([]string{"c", "d", "e"})
	assert.ErrorIs(t, err, ErrOutOfCapacity)
	assert.Equal(t, []string{"a", "b"}, v.Slice())

	assert.Panics(t, func() { v.PushSlice([]string{"c", "d", "e"}) })
	assert.Equal(t, 2, v.Len())

	v.PushSlice([]string{"c", "d"})
	assert.Equal(t, "[a b c d]", v.String())
}

func TestFromSlice(t *testing.T) {
	v, err := FromSlice(4, []int{3, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, 4, v.Cap())

	_, err = FromSlice(2, []int{3, 1, 2})
	assert.ErrorIs(t, err, ErrOutOfCapacity)

	assert.Panics(t, func() { New[int](-1) })
}

func TestAtSet(t *testing.T) {
	v, err := FromSlice(2, []int{7, 8})
	require.NoError(t, err)

	v.Set(0, 9)
	assert.Equal(t, 9, v.At(0))
	assert.Panics(t, func() { v.At(2) })
}

func TestIterators(t *testing.T) {
	v, err := FromSlice(4, []int{10, 20, 30})
	require.NoError(t, err)

	var fwd, bwd []int
	for _, x := range v.All() {
		fwd = append(fwd, x)
	}
	for i, x := range v.Backward() {
		bwd = append(bwd, x+i)
	}
	assert.Equal(t, []int{10, 20, 30}, fwd)
	assert.Equal(t, []int{32, 21, 10}, bwd)
}

func TestSortEqualCompare(t *testing.T) {
	a, _ := FromSlice(8, []int{3, 1, 2})
	b, _ := FromSlice(3, []int{1, 2, 3})

	Sort(a)
	assert.Equal(t, []int{1, 2, 3}, a.Slice())
	assert.True(t, Equal(a, b))
	assert.Zero(t, Compare(a, b))

	b.Set(2, 4)
	assert.Equal(t, -1, Compare(a, b))

	SortFunc(a, func(x, y int) int { return y - x })
	assert.Equal(t, []int{3, 2, 1}, a.Slice())
}

func TestClone(t *testing.T) {
	a, _ := FromSlice(4, []int{1, 2})
	c := a.Clone()
	c.Push(3)

	assert.Equal(t, 2, a.Len())
	assert.Equal(t, 4, c.Cap())
	assert.Equal(t, []int{1, 2, 3}, c.Slice())
}

func TestSliceDoesNotLeakCapacity(t *testing.T) {
	v, _ := FromSlice(4, []int{1})
	s := append(v.Slice(), 2)

	assert.Equal(t, []int{1, 2}, s)
	assert.Equal(t, 1, v.Len())
}

func TestJSON(t *testing.T) {
	v, _ := FromSlice(4, []int{1, 2, 3})

	b, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `[1,2,3]`, string(b))

	t.Run("bounded", func(t *testing.T) {
		dst := New[int](2)
		err := json.Unmarshal([]byte(`[1,2,3]`), dst)
		assert.ErrorIs(t, err, ErrOutOfCapacity)

		require.NoError(t, json.Unmarshal([]byte(`[5,6]`), dst))
		assert.Equal(t, []int{5, 6}, dst.Slice())
		assert.Equal(t, 2, dst.Cap())
	})

	t.Run("zero value", func(t *testing.T) {
		var dst ArrayVec[int]
		require.NoError(t, json.Unmarshal([]byte(`[1,2,3]`), &dst))
		assert.Equal(t, 3, dst.Cap())
		assert.Equal(t, []int{1, 2, 3}, dst.Slice())
	})

	t.Run("empty", func(t *testing.T) {
		var zero ArrayVec[int]
		b, err := zero.MarshalJSON()
		require.NoError(t, err)
		assert.Equal(t, "[]", string(b))
	})
}

func TestByteWriter(t *testing.T) {
	w := NewByteWriter(4)

	n, err := w.Write([]byte{0xde, 0xad})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.NoError(t, w.WriteByte(0xbe))

	_, err = w.Write([]byte{0xef, 0x00})
	assert.ErrorIs(t, err, ErrOutOfCapacity)

	require.NoError(t, w.WriteByte(0xef))
	assert.ErrorIs(t, w.WriteByte(0), ErrOutOfCapacity)

	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, w.Bytes())
	assert.Equal(t, "deadbeef", w.String())
	assert.Equal(t, "deadbeef", Hex(w.V))
}
