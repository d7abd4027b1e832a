package inet

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hupe1980/netbuf/codec"
)

// Binary family tags.
const (
	tagNil  = 0
	tagIPv4 = 4
	tagIPv6 = 6
)

// BinaryLen returns the length of a's binary form: 1, 7 or 19 bytes.
func (a Addr) BinaryLen() int {
	switch a.family {
	case FamilyIPv4:
		return 1 + 4 + 2
	case FamilyIPv6:
		return 1 + 16 + 2
	default:
		return 1
	}
}

// AppendBinary appends the binary form: a family tag (0, 4 or 6) followed
// for IP addresses by the address bytes and the big-endian port.
func (a Addr) AppendBinary(b []byte) ([]byte, error) {
	switch a.family {
	case FamilyIPv4:
		b = append(b, tagIPv4)
		b = append(b, a.ip[:4]...)
	case FamilyIPv6:
		b = append(b, tagIPv6)
		b = append(b, a.ip[:]...)
	default:
		return append(b, tagNil), nil
	}
	return binary.BigEndian.AppendUint16(b, a.port), nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (a Addr) MarshalBinary() ([]byte, error) {
	return a.AppendBinary(make([]byte, 0, a.BinaryLen()))
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. data must hold
// exactly one encoded address.
func (a *Addr) UnmarshalBinary(data []byte) error {
	v, n, err := decodeBinary(data)
	if err != nil {
		return err
	}
	if n != len(data) {
		return fmt.Errorf("%w: %d trailing bytes", ErrInvalidAddress, len(data)-n)
	}
	*a = v
	return nil
}

// decodeBinary decodes an address from the front of data. Unknown family
// tags decode to the nil address.
func decodeBinary(data []byte) (Addr, int, error) {
	if len(data) == 0 {
		return Addr{}, 0, fmt.Errorf("%w: empty", ErrInvalidAddress)
	}
	var ipLen int
	switch data[0] {
	case tagIPv4:
		ipLen = 4
	case tagIPv6:
		ipLen = 16
	default:
		return Addr{}, 1, nil
	}
	n := 1 + ipLen + 2
	if len(data) < n {
		return Addr{}, 0, fmt.Errorf("%w: short ipv%d encoding", ErrInvalidAddress, data[0])
	}
	return FromIPPort(data[1:1+ipLen], binary.BigEndian.Uint16(data[1+ipLen:n])), n, nil
}

// WriteTo writes the binary form to w.
func (a Addr) WriteTo(w io.Writer) (int64, error) {
	var buf [19]byte
	b, _ := a.AppendBinary(buf[:0])
	n, err := w.Write(b)
	return int64(n), err
}

// ReadAddr reads one binary address from r. Unknown family tags yield the
// nil address after consuming only the tag byte.
func ReadAddr(r io.Reader) (Addr, error) {
	var buf [19]byte
	if _, err := io.ReadFull(r, buf[:1]); err != nil {
		return Addr{}, err
	}
	var ipLen int
	switch buf[0] {
	case tagIPv4:
		ipLen = 4
	case tagIPv6:
		ipLen = 16
	default:
		return Addr{}, nil
	}
	if _, err := io.ReadFull(r, buf[1:1+ipLen+2]); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return Addr{}, err
	}
	a, _, err := decodeBinary(buf[:1+ipLen+2])
	return a, err
}

// MarshalText implements encoding.TextMarshaler. The nil address encodes as
// the empty string.
func (a Addr) MarshalText() ([]byte, error) {
	if a.IsNil() {
		return []byte{}, nil
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Addr) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// MarshalJSON encodes a as a JSON string in text form.
func (a Addr) MarshalJSON() ([]byte, error) {
	text, _ := a.MarshalText()
	return codec.Default.Marshal(string(text))
}

// UnmarshalJSON decodes a JSON string in text form.
func (a *Addr) UnmarshalJSON(data []byte) error {
	var s string
	if err := codec.Default.Unmarshal(data, &s); err != nil {
		return err
	}
	return a.UnmarshalText([]byte(s))
}
