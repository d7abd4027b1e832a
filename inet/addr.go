// Package inet provides Addr, a compact IPv4 or IPv6 socket address.
//
// Addr is a comparable value type: it can be used as a map key and compared
// with ==. The zero value is the nil address, which belongs to no family.
//
// The text form is "ip/port", the same notation used for CIDR ranges where
// the port field carries the prefix length (see IsWithin).
package inet

import (
	"bytes"
	"cmp"
	"encoding/binary"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"strconv"
	"strings"
)

// ErrInvalidAddress is returned when an address cannot be parsed or decoded.
var ErrInvalidAddress = errors.New("inet: invalid address")

// Family identifies the address family of an Addr.
type Family uint8

const (
	// FamilyNone is the family of the nil address.
	FamilyNone Family = iota
	// FamilyIPv4 is the IPv4 family.
	FamilyIPv4
	// FamilyIPv6 is the IPv6 family.
	FamilyIPv6
)

func (f Family) String() string {
	switch f {
	case FamilyNone:
		return "none"
	case FamilyIPv4:
		return "ipv4"
	case FamilyIPv6:
		return "ipv6"
	default:
		return fmt.Sprintf("Family(%d)", uint8(f))
	}
}

// Addr is an IP address and port.
type Addr struct {
	family Family
	ip     [16]byte // IPv4 uses the first four bytes, the rest stay zero
	port   uint16
}

// Key is a compact lookup key for an Addr.
type Key struct {
	Hi, Lo uint64
	Port   uint16
}

// FromIPPort returns an address for ip, which must be 4 (IPv4) or 16
// (IPv6) bytes long. Any other length yields the nil address.
func FromIPPort(ip []byte, port uint16) Addr {
	var a Addr
	a.Set(ip, port)
	return a
}

// IPv4Loopback returns 127.0.0.1 with the given port.
func IPv4Loopback(port uint16) Addr {
	return FromIPPort([]byte{127, 0, 0, 1}, port)
}

// IPv4Any returns 0.0.0.0/0.
func IPv4Any() Addr {
	return Addr{family: FamilyIPv4}
}

// IPv6Loopback returns ::1 with the given port.
func IPv6Loopback(port uint16) Addr {
	a := Addr{family: FamilyIPv6, port: port}
	a.ip[15] = 1
	return a
}

// IPv6Any returns ::/0.
func IPv6Any() Addr {
	return Addr{family: FamilyIPv6}
}

// FromAddrPort converts a netip.AddrPort. IPv4-mapped IPv6 addresses are
// unmapped to IPv4; zones are dropped.
func FromAddrPort(ap netip.AddrPort) Addr {
	ip := ap.Addr().Unmap()
	switch {
	case ip.Is4():
		b := ip.As4()
		return FromIPPort(b[:], ap.Port())
	case ip.Is6():
		b := ip.As16()
		return FromIPPort(b[:], ap.Port())
	default:
		return Addr{}
	}
}

// FromUDPAddr converts a *net.UDPAddr. A nil pointer yields the nil address.
func FromUDPAddr(ua *net.UDPAddr) Addr {
	if ua == nil {
		return Addr{}
	}
	return FromAddrPort(ua.AddrPort())
}

// Parse parses "ip" or "ip/port". Surrounding whitespace is ignored, an
// empty string yields the nil address and an unparsable port is read as 0.
func Parse(s string) (Addr, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Addr{}, nil
	}

	var port uint16
	ipStr, portStr, ok := strings.Cut(s, "/")
	if ok {
		if p, err := strconv.ParseUint(portStr, 10, 16); err == nil {
			port = uint16(p)
		}
	}

	ip, err := netip.ParseAddr(ipStr)
	if err != nil || ip.Zone() != "" {
		return Addr{}, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	if ip.Is4() {
		b := ip.As4()
		return FromIPPort(b[:], port), nil
	}
	b := ip.As16()
	return FromIPPort(b[:], port), nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Addr {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Set replaces a with ip and port and returns the resulting family. An ip
// that is neither 4 nor 16 bytes long leaves a nil and returns FamilyNone.
func (a *Addr) Set(ip []byte, port uint16) Family {
	*a = Addr{}
	switch len(ip) {
	case 4:
		a.family = FamilyIPv4
	case 16:
		a.family = FamilyIPv6
	default:
		return FamilyNone
	}
	copy(a.ip[:], ip)
	a.port = port
	return a.family
}

// Family returns the address family.
func (a Addr) Family() Family { return a.family }

// IsNil reports whether a is the nil address.
func (a Addr) IsNil() bool { return a.family == FamilyNone }

// IsIPv4 reports whether a is an IPv4 address.
func (a Addr) IsIPv4() bool { return a.family == FamilyIPv4 }

// IsIPv6 reports whether a is an IPv6 address.
func (a Addr) IsIPv6() bool { return a.family == FamilyIPv6 }

// IsIP reports whether a holds an IP address of either family.
func (a Addr) IsIP() bool { return a.family == FamilyIPv4 || a.family == FamilyIPv6 }

// IP returns a copy of the raw address bytes: 4 for IPv4, 16 for IPv6 and
// nil for the nil address.
func (a Addr) IP() []byte {
	switch a.family {
	case FamilyIPv4:
		return bytes.Clone(a.ip[:4])
	case FamilyIPv6:
		return bytes.Clone(a.ip[:])
	default:
		return nil
	}
}

// Port returns the port, or 0 for the nil address.
func (a Addr) Port() uint16 { return a.port }

// SetPort sets the port. It does nothing on the nil address, which has no
// family to attach a port to.
func (a *Addr) SetPort(port uint16) {
	if a.IsIP() {
		a.port = port
	}
}

// Key returns a compact lookup key.
func (a Addr) Key() Key {
	return Key{
		Hi:   binary.BigEndian.Uint64(a.ip[:8]),
		Lo:   binary.BigEndian.Uint64(a.ip[8:]),
		Port: a.port,
	}
}

func (a Addr) netipAddr() netip.Addr {
	switch a.family {
	case FamilyIPv4:
		return netip.AddrFrom4([4]byte(a.ip[:4]))
	case FamilyIPv6:
		return netip.AddrFrom16(a.ip)
	default:
		return netip.Addr{}
	}
}

// AddrPort converts a to a netip.AddrPort; the nil address yields the zero
// value.
func (a Addr) AddrPort() netip.AddrPort {
	if a.IsNil() {
		return netip.AddrPort{}
	}
	return netip.AddrPortFrom(a.netipAddr(), a.port)
}

// UDPAddr converts a to a *net.UDPAddr, or nil for the nil address.
func (a Addr) UDPAddr() *net.UDPAddr {
	if a.IsNil() {
		return nil
	}
	return net.UDPAddrFromAddrPort(a.AddrPort())
}

// IsWithin reports whether a lies in the range cidr, whose port holds the
// prefix length in bits. Bits of cidr beyond the prefix are ignored, so
// 10.0.0.1/24 and 10.0.0.0/24 are the same range. A prefix longer than the
// family's address never matches.
func (a Addr) IsWithin(cidr Addr) bool {
	if a.family != cidr.family || a.IsNil() {
		return false
	}
	p := netip.PrefixFrom(cidr.netipAddr(), int(cidr.port))
	return p.IsValid() && p.Contains(a.netipAddr())
}

// IPString returns only the IP portion of a, or "(null)" for the nil
// address.
func (a Addr) IPString() string {
	if a.IsNil() {
		return "(null)"
	}
	return a.netipAddr().String()
}

// String returns "ip/port", or "(null)" for the nil address.
func (a Addr) String() string {
	if a.IsNil() {
		return "(null)"
	}
	return a.IPString() + "/" + strconv.FormatUint(uint64(a.port), 10)
}

// Compare orders addresses by family (nil < IPv4 < IPv6), then by IP bytes,
// then by port.
func (a Addr) Compare(b Addr) int {
	if c := cmp.Compare(a.family, b.family); c != 0 {
		return c
	}
	if c := bytes.Compare(a.ip[:], b.ip[:]); c != 0 {
		return c
	}
	return cmp.Compare(a.port, b.port)
}
