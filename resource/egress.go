package resource

import (
	"context"
	"net/netip"
	"sync/atomic"
)

// DatagramWriter sends one datagram to addr. *net.UDPConn implements it.
type DatagramWriter interface {
	WriteToUDPAddrPort(b []byte, addr netip.AddrPort) (int, error)
}

// Egress sends datagrams under the controller's I/O limit.
// Each datagram is admitted as a whole before it is written, so a datagram
// is either sent complete or not at all.
type Egress struct {
	rc  *Controller
	dst DatagramWriter

	datagrams atomic.Int64
	bytes     atomic.Int64
}

// NewEgress paces writes to dst with rc. A nil rc sends unpaced.
func NewEgress(rc *Controller, dst DatagramWriter) *Egress {
	return &Egress{rc: rc, dst: dst}
}

// Send waits until the limiter admits len(p) bytes and then writes p to addr.
// Nothing is written if ctx is done first.
func (e *Egress) Send(ctx context.Context, p []byte, addr netip.AddrPort) error {
	if err := e.rc.AcquireIO(ctx, len(p)); err != nil {
		return err
	}
	n, err := e.dst.WriteToUDPAddrPort(p, addr)
	if err != nil {
		return err
	}
	e.datagrams.Add(1)
	e.bytes.Add(int64(n))
	return nil
}

// Sent returns the number of datagrams and bytes written so far.
func (e *Egress) Sent() (datagrams, bytes int64) {
	return e.datagrams.Load(), e.bytes.Load()
}
