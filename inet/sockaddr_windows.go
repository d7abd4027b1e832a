//go:build windows

package inet

import "golang.org/x/sys/windows"

// FromSockaddr converts an OS socket address. Families other than
// AF_INET and AF_INET6 yield the nil address.
func FromSockaddr(sa windows.Sockaddr) Addr {
	switch sa := sa.(type) {
	case *windows.SockaddrInet4:
		return FromIPPort(sa.Addr[:], uint16(sa.Port))
	case *windows.SockaddrInet6:
		return FromIPPort(sa.Addr[:], uint16(sa.Port))
	default:
		return Addr{}
	}
}

// Sockaddr converts a for use with raw socket calls, or returns nil for the
// nil address.
func (a Addr) Sockaddr() windows.Sockaddr {
	switch a.family {
	case FamilyIPv4:
		sa := &windows.SockaddrInet4{Port: int(a.port)}
		copy(sa.Addr[:], a.ip[:4])
		return sa
	case FamilyIPv6:
		return &windows.SockaddrInet6{Port: int(a.port), Addr: a.ip}
	default:
		return nil
	}
}
