// Package blob provides fixed-size byte arrays used for keys, hashes and
// identifiers.
//
// Each BlobN is a plain [N]byte, so values are comparable, usable as map
// keys and copied by assignment. They render as lowercase hex in String and
// as unpadded URL-safe base64 in JSON; the binary form is the raw bytes.
package blob

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/hupe1980/netbuf/codec"
	"github.com/hupe1980/netbuf/codec/base64"
	"github.com/hupe1980/netbuf/codec/hex"
)

// ErrInvalidLength is returned when input does not have exactly the blob's length.
var ErrInvalidLength = errors.New("blob: invalid length")

func lengthError(want, got int) error {
	return fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidLength, want, got)
}

func fromSlice(dst, src []byte) error {
	if len(src) != len(dst) {
		return lengthError(len(dst), len(src))
	}
	copy(dst, src)
	return nil
}

func parseHex(dst []byte, s string) error {
	return fromSlice(dst, hex.Decode(s))
}

func isZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}

func marshalJSON(b []byte) ([]byte, error) {
	return codec.Default.Marshal(base64.Encode(b))
}

func unmarshalJSON(dst, data []byte) error {
	var s string
	if err := codec.Default.Unmarshal(data, &s); err != nil {
		return err
	}
	raw, err := base64.Decode(s)
	if err != nil {
		return err
	}
	return fromSlice(dst, raw)
}

func compare(a, b []byte) int { return bytes.Compare(a, b) }
