// Package base64 encodes bytes with the URL-safe alphabet and no padding.
package base64

import (
	"encoding/base64"
	"errors"
	"fmt"
)

// ErrInvalidEncoding is returned when input is not valid unpadded URL-safe base64.
var ErrInvalidEncoding = errors.New("base64: invalid encoding")

var enc = base64.RawURLEncoding

// EncodedLen returns the length of the encoding of n source bytes.
func EncodedLen(n int) int { return enc.EncodedLen(n) }

// Encode returns the encoding of b.
func Encode(b []byte) string {
	return enc.EncodeToString(b)
}

// Append appends the encoding of b to dst and returns the extended slice.
func Append(dst, b []byte) []byte {
	return enc.AppendEncode(dst, b)
}

// Decode decodes s. Padding characters and the standard alphabet's '+' and
// '/' are rejected.
func Decode(s string) ([]byte, error) {
	b, err := enc.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEncoding, err)
	}
	return b, nil
}

// DecodeBytes is Decode for byte-slice input.
func DecodeBytes(s []byte) ([]byte, error) {
	b, err := enc.AppendDecode(nil, s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEncoding, err)
	}
	return b, nil
}
