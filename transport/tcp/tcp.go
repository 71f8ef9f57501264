// Package tcp dials origins over TCP.
package tcp

import (
	"context"
	"net"
	"net/netip"
	"syscall"

	"http-inspector/application/util/domain"
	"http-inspector/transport"

	"github.com/pkg/errors"
)

// Dialer resolves the host with a domain.Lookuper and tries the
// returned addresses in order.
type Dialer struct {
	lookuper domain.Lookuper
	dialer   net.Dialer
}

var _ transport.ConnDialer = (*Dialer)(nil)

func NewDialer(lookuper domain.Lookuper) *Dialer {
	return &Dialer{lookuper: lookuper}
}

func (d *Dialer) Dial(ctx context.Context, addr transport.Addr) (transport.Conn, error) {
	ips, err := d.resolve(ctx, addr.Host)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for _, ip := range ips {
		target := netip.AddrPortFrom(ip, addr.Port)

		conn, err := d.dialer.DialContext(ctx, "tcp", target.String())
		if err == nil {
			return conn, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		lastErr = err
	}

	if errors.Is(lastErr, syscall.ECONNREFUSED) {
		return nil, errors.Wrapf(transport.ErrConnRefused, "dialing %s", addr)
	}
	if errors.Is(lastErr, syscall.ENETUNREACH) || errors.Is(lastErr, syscall.EHOSTUNREACH) {
		return nil, errors.Wrapf(transport.ErrNetUnreachable, "dialing %s", addr)
	}
	return nil, errors.Wrapf(lastErr, "dialing %s", addr)
}

func (d *Dialer) resolve(ctx context.Context, host string) ([]netip.Addr, error) {
	if ip, err := netip.ParseAddr(host); err == nil {
		return []netip.Addr{ip}, nil
	}

	ips, err := d.lookuper.LookupIP(ctx, host)
	if err != nil {
		return nil, errors.Wrapf(err, "lookup for host(%s) failed", host)
	}
	return ips, nil
}
