// Package codec centralizes structured encoding of netbuf values.
//
// The JSON methods of blob, inet and arrayvec types route through Default,
// so swapping it changes how every value renders in configs and APIs.
// Subpackages hold the byte-level wire codecs (hex, base64, varint,
// compress), which are independent of Codec.
package codec

import (
	"fmt"
	"io"
)

// Codec encodes and decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// Appender is implemented by codecs that can encode onto an existing slice.
type Appender interface {
	Append(dst []byte, v any) ([]byte, error)
}

// Default is the codec used by the JSON methods of netbuf value types.
var Default Codec = GoJSON{}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// Append appends the encoding of v to dst using c, or Default if c is nil.
func Append(c Codec, dst []byte, v any) ([]byte, error) {
	if c == nil {
		c = Default
	}
	if a, ok := c.(Appender); ok {
		return a.Append(dst, v)
	}
	b, err := c.Marshal(v)
	if err != nil {
		return dst, err
	}
	return append(dst, b...), nil
}

// Write encodes v with c (Default if nil) and hands it to w in a single
// Write call. Bounded writers such as *netbuf.Buffer therefore take the
// whole document or none of it.
func Write(w io.Writer, c Codec, v any) (int, error) {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		return 0, fmt.Errorf("codec %s: %w", c.Name(), err)
	}
	return w.Write(b)
}

// MustMarshal is a helper for tests and static tables.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}
