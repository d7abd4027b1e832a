package codec

import (
	"bytes"

	gojson "github.com/goccy/go-json"
)

// GoJSON is the github.com/goccy/go-json codec and the package Default.
//
// The zero value does not escape <, > and & in strings, which keeps
// addresses and blobs byte-identical to their text forms.
type GoJSON struct {
	EscapeHTML bool
}

// Marshal encodes v to JSON.
func (c GoJSON) Marshal(v any) ([]byte, error) {
	if c.EscapeHTML {
		return gojson.Marshal(v)
	}
	var buf bytes.Buffer
	enc := gojson.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Unmarshal decodes data into v.
func (GoJSON) Unmarshal(data []byte, v any) error { return gojson.Unmarshal(data, v) }

// Name returns "go-json".
func (GoJSON) Name() string { return "go-json" }

// Append appends the encoding of v to dst.
func (c GoJSON) Append(dst []byte, v any) ([]byte, error) {
	b, err := c.Marshal(v)
	if err != nil {
		return dst, err
	}
	return append(dst, b...), nil
}
