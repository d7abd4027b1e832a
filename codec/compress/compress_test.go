package compress

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/netbuf"
	"github.com/hupe1980/netbuf/testutil"
)

func TestRoundTrip(t *testing.T) {
	rng := testutil.NewRNG(4711)

	inputs := map[string][]byte{
		"empty":        {},
		"compressible": testutil.Compressible(1200),
		"random":       rng.Bytes(1200),
	}

	for name, src := range inputs {
		for _, alg := range []Algorithm{None, LZ4, ZSTD} {
			t.Run(fmt.Sprintf("%s/%s", name, alg), func(t *testing.T) {
				block := netbuf.NewBuffer(2048)
				defer block.Release()

				used, err := Encode(block, src, alg)
				require.NoError(t, err)
				assert.LessOrEqual(t, block.Len(), Bound(len(src)))

				if name == "compressible" && alg != None {
					assert.Equal(t, alg, used)
					assert.Less(t, block.Len(), len(src)/2)
				} else {
					assert.Equal(t, None, used)
				}

				out := netbuf.NewBuffer(2048)
				defer out.Release()
				require.True(t, out.Append([]byte("hdr")))

				require.NoError(t, Decode(out, block.Bytes()))
				assert.Equal(t, "hdr", string(out.Bytes()[:3]))
				assert.Equal(t, src, append([]byte{}, out.Bytes()[3:]...))
			})
		}
	}
}

func TestEncode_StoresRawUnlessSmaller(t *testing.T) {
	for _, alg := range []Algorithm{LZ4, ZSTD} {
		t.Run(alg.String(), func(t *testing.T) {
			block := netbuf.NewBuffer(64)
			defer block.Release()

			used, err := Encode(block, nil, alg)
			require.NoError(t, err)
			assert.Equal(t, None, used)
			assert.Equal(t, []byte{0x00, 0x80}, block.Bytes())
		})
	}

	// Ten bytes must compress to fewer than nine to be kept compressed.
	block := netbuf.NewBuffer(64)
	defer block.Release()

	used, err := Encode(block, []byte("aaaaaaaaaa"), LZ4)
	require.NoError(t, err)
	assert.Equal(t, None, used)
	assert.Equal(t, "aaaaaaaaaa", string(block.Bytes()[2:]))
}

func TestEncode_DoesNotFit(t *testing.T) {
	dst := netbuf.NewBuffer(16)
	defer dst.Release()
	require.True(t, dst.Append([]byte("x")))

	_, err := Encode(dst, testutil.NewRNG(1).Bytes(64), LZ4)
	assert.ErrorIs(t, err, ErrDoesNotFit)
	assert.Equal(t, 1, dst.Len())
}

func TestEncode_UnknownAlgorithm(t *testing.T) {
	dst := netbuf.NewBuffer(64)
	defer dst.Release()

	_, err := Encode(dst, []byte("abc"), Algorithm(9))
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
	assert.Zero(t, dst.Len())
}

func TestDecode_Errors(t *testing.T) {
	src := testutil.Compressible(1000)

	block := netbuf.NewBuffer(1024)
	defer block.Release()
	_, err := Encode(block, src, LZ4)
	require.NoError(t, err)

	t.Run("too small destination", func(t *testing.T) {
		out := netbuf.NewBuffer(512)
		defer out.Release()

		err := Decode(out, block.Bytes())
		assert.ErrorIs(t, err, ErrDoesNotFit)
		assert.Zero(t, out.Len())
	})

	t.Run("truncated", func(t *testing.T) {
		out := netbuf.NewBuffer(1024)
		defer out.Release()

		assert.ErrorIs(t, Decode(out, []byte{1}), ErrCorrupt)
		assert.ErrorIs(t, Decode(out, []byte{1, 0x01}), ErrCorrupt)

		err := Decode(out, block.Bytes()[:block.Len()/2])
		assert.ErrorIs(t, err, ErrCorrupt)
		assert.Zero(t, out.Len())
	})

	t.Run("stored length mismatch", func(t *testing.T) {
		out := netbuf.NewBuffer(64)
		defer out.Release()

		// None, declared 5 bytes, 3 present.
		assert.ErrorIs(t, Decode(out, []byte{0, 0x85, 'a', 'b', 'c'}), ErrCorrupt)
		assert.Zero(t, out.Len())
	})

	t.Run("unknown algorithm", func(t *testing.T) {
		out := netbuf.NewBuffer(64)
		defer out.Release()

		assert.ErrorIs(t, Decode(out, []byte{7, 0x81, 'a'}), ErrUnknownAlgorithm)
	})
}

func TestAlgorithmString(t *testing.T) {
	assert.Equal(t, "none", None.String())
	assert.Equal(t, "lz4", LZ4.String())
	assert.Equal(t, "zstd", ZSTD.String())
	assert.Equal(t, "Algorithm(5)", Algorithm(5).String())
}

func BenchmarkEncodeLZ4(b *testing.B) {
	src := testutil.Compressible(1400)
	dst := netbuf.NewBuffer(2048)
	defer dst.Release()

	b.ReportAllocs()
	b.SetBytes(int64(len(src)))
	for b.Loop() {
		dst.Clear()
		if _, err := Encode(dst, src, LZ4); err != nil {
			b.Fatal(err)
		}
	}
}
