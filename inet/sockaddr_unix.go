//go:build unix

package inet

import "golang.org/x/sys/unix"

// FromSockaddr converts an OS socket address. Families other than
// AF_INET and AF_INET6 yield the nil address.
func FromSockaddr(sa unix.Sockaddr) Addr {
	switch sa := sa.(type) {
	case *unix.SockaddrInet4:
		return FromIPPort(sa.Addr[:], uint16(sa.Port))
	case *unix.SockaddrInet6:
		return FromIPPort(sa.Addr[:], uint16(sa.Port))
	default:
		return Addr{}
	}
}

// Sockaddr converts a for use with raw socket calls, or returns nil for the
// nil address.
func (a Addr) Sockaddr() unix.Sockaddr {
	switch a.family {
	case FamilyIPv4:
		sa := &unix.SockaddrInet4{Port: int(a.port)}
		copy(sa.Addr[:], a.ip[:4])
		return sa
	case FamilyIPv6:
		return &unix.SockaddrInet6{Port: int(a.port), Addr: a.ip}
	default:
		return nil
	}
}
