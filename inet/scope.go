package inet

import (
	"encoding/binary"
	"fmt"
	"slices"
)

// Scope is the reachability class of an address.
type Scope uint8

const (
	ScopeNone Scope = iota
	ScopeMulticast
	ScopeLoopback
	// ScopePseudoPrivate covers blocks assigned to organisations that do not
	// route them on the public internet and that are often reused locally.
	ScopePseudoPrivate
	ScopeGlobal
	ScopeLinkLocal
	// ScopeShared is the carrier-grade NAT space 100.64.0.0/10.
	ScopeShared
	ScopePrivate
)

var scopeNames = [...]string{
	ScopeNone:          "none",
	ScopeMulticast:     "multicast",
	ScopeLoopback:      "loopback",
	ScopePseudoPrivate: "pseudo-private",
	ScopeGlobal:        "global",
	ScopeLinkLocal:     "link-local",
	ScopeShared:        "shared",
	ScopePrivate:       "private",
}

func (s Scope) String() string {
	if int(s) < len(scopeNames) {
		return scopeNames[s]
	}
	return fmt.Sprintf("Scope(%d)", uint8(s))
}

// First octets of /8 blocks that are allocated but not publicly routed.
var pseudoPrivateV4 = []byte{
	6,  // US Army
	21, // US DDN-RVN
	22, // US DISA
	25, // UK Ministry of Defence
	26, // US DISA
	28, // US DSI-North
	29, // US DISA
	30, // US DISA
	51, // UK Department of Social Security
	55, // US DoD
	56, // US Postal Service
}

// Scope classifies a by the IANA special-purpose registries.
func (a Addr) Scope() Scope {
	switch a.family {
	case FamilyIPv4:
		return scopeV4(binary.BigEndian.Uint32(a.ip[:4]))
	case FamilyIPv6:
		return scopeV6(&a.ip)
	default:
		return ScopeNone
	}
}

func scopeV4(ip uint32) Scope {
	switch first := byte(ip >> 24); first {
	case 0x00, 0xff: // 0.0.0.0/8, 255.0.0.0/8
		return ScopeNone
	case 0x0a: // 10.0.0.0/8
		return ScopePrivate
	case 0x7f: // 127.0.0.0/8
		return ScopeLoopback
	case 0x64:
		if ip&0xffc00000 == 0x64400000 { // 100.64.0.0/10
			return ScopeShared
		}
	case 0xa9:
		if ip&0xffff0000 == 0xa9fe0000 { // 169.254.0.0/16
			return ScopeLinkLocal
		}
	case 0xac:
		if ip&0xfff00000 == 0xac100000 { // 172.16.0.0/12
			return ScopePrivate
		}
	case 0xc0:
		if ip&0xffff0000 == 0xc0a80000 || ip&0xffffff00 == 0xc0000200 { // 192.168.0.0/16, 192.0.2.0/24
			return ScopePrivate
		}
	case 0xc6:
		if ip&0xfffe0000 == 0xc6120000 || ip&0xffffff00 == 0xc6336400 { // 198.18.0.0/15, 198.51.100.0/24
			return ScopePrivate
		}
	case 0xcb:
		if ip&0xffffff00 == 0xcb007100 { // 203.0.113.0/24
			return ScopePrivate
		}
	default:
		if slices.Contains(pseudoPrivateV4, first) {
			return ScopePseudoPrivate
		}
		switch ip >> 28 {
		case 0xe: // 224.0.0.0/4
			return ScopeMulticast
		case 0xf: // 240.0.0.0/4, reserved
			return ScopePrivate
		}
	}
	return ScopeGlobal
}

// zeroFrom reports whether ip[from:15] are all zero.
func zeroFrom(ip *[16]byte, from int) bool {
	for _, b := range ip[from:15] {
		if b != 0 {
			return false
		}
	}
	return true
}

func scopeV6(ip *[16]byte) Scope {
	switch {
	case ip[0] == 0xff: // ff00::/8
		return ScopeMulticast
	case ip[0] == 0xfe && ip[1]&0xc0 == 0x80: // fe80::/10
		if zeroFrom(ip, 2) && ip[15] == 0x01 {
			return ScopeLoopback
		}
		return ScopeLinkLocal
	case ip[0]&0xfe == 0xfc: // fc00::/7
		return ScopePrivate
	}
	if zeroFrom(ip, 0) {
		switch ip[15] {
		case 0x01: // ::1
			return ScopeLoopback
		case 0x00: // ::
			return ScopeNone
		}
	}
	return ScopeGlobal
}
