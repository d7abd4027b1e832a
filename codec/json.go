package codec

import "encoding/json"

// JSON is the encoding/json codec.
//
// Use it when output must match encoding/json byte for byte, including its
// HTML escaping; otherwise prefer Default.
type JSON struct{}

// Marshal encodes v to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns "json".
func (JSON) Name() string { return "json" }

// Append appends the encoding of v to dst.
func (JSON) Append(dst []byte, v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return dst, err
	}
	return append(dst, b...), nil
}
