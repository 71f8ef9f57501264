// Package transport defines the byte-stream connections the HTTP layer runs on.
package transport

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrConnRefused        = errors.New("connection refused")
	ErrNetUnreachable     = errors.New("network unreachable")
	ErrAddrAlreadyInUse   = errors.New("address already in use")
	ErrConnListenerClosed = errors.New("conn listener is closed")
)

// Addr identifies an origin. It is comparable and used as a pool key.
type Addr struct {
	Host string
	Port uint16
}

func (a Addr) String() string {
	return net.JoinHostPort(a.Host, strconv.FormatUint(uint64(a.Port), 10))
}

type Conn interface {
	Read(p []byte) (n int, err error)
	Write(p []byte) (n int, err error)
	Close() error

	SetDeadline(t time.Time) error
}

type ConnDialer interface {
	Dial(ctx context.Context, addr Addr) (Conn, error)
}

type ConnListener interface {
	Accept(ctx context.Context) (Conn, error)
	Close() error
}
