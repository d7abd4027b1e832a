// Package compress frames packet payloads as self-describing compressed
// blocks written into bounded buffers.
//
// Block format:
//
//	[algorithm u8][uncompressed length varint][payload...]
//
// The payload runs to the end of the block. If compression does not bring
// the payload under 90% of the input, the block is stored uncompressed
// (algorithm None) so the receiver never pays for a useless decode.
package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/netbuf"
	"github.com/hupe1980/netbuf/codec/varint"
	"github.com/hupe1980/netbuf/internal/conv"
)

// Algorithm identifies the payload encoding of a block.
type Algorithm uint8

const (
	// None stores the payload as is.
	None Algorithm = 0
	// LZ4 is LZ4 block compression (fast, good for hot paths).
	LZ4 Algorithm = 1
	// ZSTD is Zstandard compression (better ratio, more CPU).
	ZSTD Algorithm = 2
)

func (a Algorithm) String() string {
	switch a {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case ZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("Algorithm(%d)", uint8(a))
	}
}

// MaxHeaderLen is the largest block header.
const MaxHeaderLen = 1 + varint.MaxLen

var (
	// ErrDoesNotFit is returned when the output does not fit the destination buffer.
	ErrDoesNotFit = errors.New("compress: output does not fit")

	// ErrCorrupt is returned for blocks that cannot be decoded.
	ErrCorrupt = errors.New("compress: corrupt block")

	// ErrUnknownAlgorithm is returned for an algorithm byte outside the known set.
	ErrUnknownAlgorithm = errors.New("compress: unknown algorithm")
)

// ZSTD encoder/decoder pools for efficiency
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
	scratchPool     = sync.Pool{New: func() any { b := make([]byte, 0, 2048); return &b }}
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedFastest),
		zstd.WithEncoderConcurrency(1),
	)
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// Bound returns the largest block Encode can produce for n input bytes,
// regardless of algorithm.
func Bound(n int) int {
	return MaxHeaderLen + n
}

// Encode appends src to dst as one block compressed with alg.
// On error dst is left unchanged. It returns the algorithm actually used,
// which is None when compression did not pay off.
func Encode(dst *netbuf.Buffer, src []byte, alg Algorithm) (Algorithm, error) {
	sp := scratchPool.Get().(*[]byte)
	defer scratchPool.Put(sp)

	var payload []byte
	switch alg {
	case None:
	case LZ4:
		bound := lz4.CompressBlockBound(len(src))
		if cap(*sp) < bound {
			*sp = make([]byte, 0, bound)
		}
		scratch := (*sp)[:bound]
		n, err := lz4.CompressBlock(src, scratch, nil)
		if err != nil {
			return None, fmt.Errorf("compress: lz4: %w", err)
		}
		if n > 0 {
			payload = scratch[:n]
		}
	case ZSTD:
		enc := getZstdEncoder()
		out := enc.EncodeAll(src, (*sp)[:0])
		putZstdEncoder(enc)
		*sp = out[:0]
		payload = out
	default:
		return None, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, uint8(alg))
	}

	used := alg
	if len(src) == 0 || payload == nil || len(payload) >= len(src)*9/10 {
		used = None
		payload = src
	}

	var hdr [MaxHeaderLen]byte
	hdr[0] = byte(used)
	h := 1 + varint.Put(hdr[1:], uint64(len(src)))

	if need := h + len(payload); need > dst.Available() {
		return None, fmt.Errorf("%w: block needs %d bytes, %d available", ErrDoesNotFit, need, dst.Available())
	}
	dst.Append(hdr[:h])
	dst.Append(payload)
	return used, nil
}

// Decode appends the decoded content of block to dst.
// On error dst keeps its previous length.
func Decode(dst *netbuf.Buffer, block []byte) error {
	if len(block) < 2 {
		return fmt.Errorf("%w: %d bytes", ErrCorrupt, len(block))
	}
	alg := Algorithm(block[0])
	rawSize, n, ok := varint.Decode(block[1:])
	if !ok {
		return fmt.Errorf("%w: bad length", ErrCorrupt)
	}
	size, err := conv.Uint64ToInt(rawSize)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	payload := block[1+n:]

	if size > dst.Available() {
		return fmt.Errorf("%w: content needs %d bytes, %d available", ErrDoesNotFit, size, dst.Available())
	}

	old := dst.Len()
	dst.Resize(old+size, 0)
	out := dst.Bytes()[old:]

	if err := decodeInto(out, payload, alg); err != nil {
		dst.Resize(old, 0)
		return err
	}
	return nil
}

func decodeInto(out, payload []byte, alg Algorithm) error {
	switch alg {
	case None:
		if len(payload) != len(out) {
			return fmt.Errorf("%w: stored length %d, header says %d", ErrCorrupt, len(payload), len(out))
		}
		copy(out, payload)
		return nil

	case LZ4:
		n, err := lz4.UncompressBlock(payload, out)
		if err != nil {
			return fmt.Errorf("%w: lz4: %w", ErrCorrupt, err)
		}
		if n != len(out) {
			return fmt.Errorf("%w: decompressed size mismatch", ErrCorrupt)
		}
		return nil

	case ZSTD:
		dec := getZstdDecoder()
		defer putZstdDecoder(dec)

		decoded, err := dec.DecodeAll(payload, out[:0])
		if err != nil {
			return fmt.Errorf("%w: zstd: %w", ErrCorrupt, err)
		}
		if len(decoded) != len(out) {
			return fmt.Errorf("%w: decompressed size mismatch", ErrCorrupt)
		}
		copy(out, decoded)
		return nil

	default:
		return fmt.Errorf("%w: %d", ErrUnknownAlgorithm, uint8(alg))
	}
}
