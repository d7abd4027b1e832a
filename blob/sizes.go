package blob

import "github.com/hupe1980/netbuf/codec/hex"

// Blob16 is a 16-byte blob.
type Blob16 [16]byte

// New16 copies b, which must be exactly 16 bytes long.
func New16(b []byte) (Blob16, error) {
	var x Blob16
	err := fromSlice(x[:], b)
	return x, err
}

// ParseHex16 decodes a hex string into a Blob16. Non-hex characters are ignored.
func ParseHex16(s string) (Blob16, error) {
	var x Blob16
	err := parseHex(x[:], s)
	return x, err
}

// Bytes returns a copy of the blob as a slice.
func (b Blob16) Bytes() []byte {
	return append([]byte(nil), b[:]...)
}

// Len returns 16.
func (Blob16) Len() int { return 16 }

// IsZero reports whether every byte is zero.
func (b Blob16) IsZero() bool { return isZero(b[:]) }

// String returns the blob as lowercase hex.
func (b Blob16) String() string { return hex.Encode(b[:]) }

// Compare compares two blobs lexicographically.
func (b Blob16) Compare(o Blob16) int { return compare(b[:], o[:]) }

// MarshalJSON encodes the blob as a base64 string.
func (b Blob16) MarshalJSON() ([]byte, error) { return marshalJSON(b[:]) }

// UnmarshalJSON decodes a base64 string of exactly 16 bytes.
func (b *Blob16) UnmarshalJSON(data []byte) error { return unmarshalJSON(b[:], data) }

// MarshalBinary returns the raw bytes.
func (b Blob16) MarshalBinary() ([]byte, error) { return b.Bytes(), nil }

// UnmarshalBinary copies exactly 16 raw bytes.
func (b *Blob16) UnmarshalBinary(data []byte) error { return fromSlice(b[:], data) }

// Blob32 is a 32-byte blob.
type Blob32 [32]byte

// New32 copies b, which must be exactly 32 bytes long.
func New32(b []byte) (Blob32, error) {
	var x Blob32
	err := fromSlice(x[:], b)
	return x, err
}

// ParseHex32 decodes a hex string into a Blob32. Non-hex characters are ignored.
func ParseHex32(s string) (Blob32, error) {
	var x Blob32
	err := parseHex(x[:], s)
	return x, err
}

// Bytes returns a copy of the blob as a slice.
func (b Blob32) Bytes() []byte {
	return append([]byte(nil), b[:]...)
}

// Len returns 32.
func (Blob32) Len() int { return 32 }

// IsZero reports whether every byte is zero.
func (b Blob32) IsZero() bool { return isZero(b[:]) }

// String returns the blob as lowercase hex.
func (b Blob32) String() string { return hex.Encode(b[:]) }

// Compare compares two blobs lexicographically.
func (b Blob32) Compare(o Blob32) int { return compare(b[:], o[:]) }

// MarshalJSON encodes the blob as a base64 string.
func (b Blob32) MarshalJSON() ([]byte, error) { return marshalJSON(b[:]) }

// UnmarshalJSON decodes a base64 string of exactly 32 bytes.
func (b *Blob32) UnmarshalJSON(data []byte) error { return unmarshalJSON(b[:], data) }

// MarshalBinary returns the raw bytes.
func (b Blob32) MarshalBinary() ([]byte, error) { return b.Bytes(), nil }

// UnmarshalBinary copies exactly 32 raw bytes.
func (b *Blob32) UnmarshalBinary(data []byte) error { return fromSlice(b[:], data) }

// Blob48 is a 48-byte blob.
type Blob48 [48]byte

// New48 copies b, which must be exactly 48 bytes long.
func New48(b []byte) (Blob48, error) {
	var x Blob48
	err := fromSlice(x[:], b)
	return x, err
}

// ParseHex48 decodes a hex string into a Blob48. Non-hex characters are ignored.
func ParseHex48(s string) (Blob48, error) {
	var x Blob48
	err := parseHex(x[:], s)
	return x, err
}

// Bytes returns a copy of the blob as a slice.
func (b Blob48) Bytes() []byte {
	return append([]byte(nil), b[:]...)
}

// Len returns 48.
func (Blob48) Len() int { return 48 }

// IsZero reports whether every byte is zero.
func (b Blob48) IsZero() bool { return isZero(b[:]) }

// String returns the blob as lowercase hex.
func (b Blob48) String() string { return hex.Encode(b[:]) }

// Compare compares two blobs lexicographically.
func (b Blob48) Compare(o Blob48) int { return compare(b[:], o[:]) }

// MarshalJSON encodes the blob as a base64 string.
func (b Blob48) MarshalJSON() ([]byte, error) { return marshalJSON(b[:]) }

// UnmarshalJSON decodes a base64 string of exactly 48 bytes.
func (b *Blob48) UnmarshalJSON(data []byte) error { return unmarshalJSON(b[:], data) }

// MarshalBinary returns the raw bytes.
func (b Blob48) MarshalBinary() ([]byte, error) { return b.Bytes(), nil }

// UnmarshalBinary copies exactly 48 raw bytes.
func (b *Blob48) UnmarshalBinary(data []byte) error { return fromSlice(b[:], data) }

// Blob64 is a 64-byte blob.
type Blob64 [64]byte

// New64 copies b, which must be exactly 64 bytes long.
func New64(b []byte) (Blob64, error) {
	var x Blob64
	err := fromSlice(x[:], b)
	return x, err
}

// ParseHex64 decodes a hex string into a Blob64. Non-hex characters are ignored.
func ParseHex64(s string) (Blob64, error) {
	var x Blob64
	err := parseHex(x[:], s)
	return x, err
}

// Bytes returns a copy of the blob as a slice.
func (b Blob64) Bytes() []byte {
	return append([]byte(nil), b[:]...)
}

// Len returns 64.
func (Blob64) Len() int { return 64 }

// IsZero reports whether every byte is zero.
func (b Blob64) IsZero() bool { return isZero(b[:]) }

// String returns the blob as lowercase hex.
func (b Blob64) String() string { return hex.Encode(b[:]) }

// Compare compares two blobs lexicographically.
func (b Blob64) Compare(o Blob64) int { return compare(b[:], o[:]) }

// MarshalJSON encodes the blob as a base64 string.
func (b Blob64) MarshalJSON() ([]byte, error) { return marshalJSON(b[:]) }

// UnmarshalJSON decodes a base64 string of exactly 64 bytes.
func (b *Blob64) UnmarshalJSON(data []byte) error { return unmarshalJSON(b[:], data) }

// MarshalBinary returns the raw bytes.
func (b Blob64) MarshalBinary() ([]byte, error) { return b.Bytes(), nil }

// UnmarshalBinary copies exactly 64 raw bytes.
func (b *Blob64) UnmarshalBinary(data []byte) error { return fromSlice(b[:], data) }
