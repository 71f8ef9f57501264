package transfer

import (
	"fmt"

	"github.com/pkg/errors"
)

type ErrorKind uint8

const (
	// KindConnect covers DNS failures, refused connections and connect timeouts.
	KindConnect ErrorKind = iota + 1
	// KindFraming covers malformed status lines, field lines and chunk sizes.
	KindFraming
	// KindTruncated is a close before the announced body end.
	KindTruncated
)

func (k ErrorKind) String() string {
	switch k {
	case KindConnect:
		return "connect"
	case KindFraming:
		return "framing"
	case KindTruncated:
		return "truncated"
	}
	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

func (k ErrorKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Synthetic statuses reported along with a transfer error.
const (
	StatusBadGateway     uint = 502
	StatusGatewayTimeout uint = 504
)

// Error is the single failure type of an exchange.
// It is delivered through the completion event, never thrown.
type Error struct {
	Kind   ErrorKind `json:"kind"`
	Detail string    `json:"detail"`
	// Status is a gateway-class status describing the failure.
	Status uint `json:"status"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s error: %s", e.Kind, e.Detail)
}

// Retryable reports whether the exchange can be reissued on a fresh connection.
func (e *Error) Retryable() bool { return e.Kind == KindConnect }

func NewConnectError(err error, timeout bool) *Error {
	status := StatusBadGateway
	if timeout {
		status = StatusGatewayTimeout
	}
	return &Error{Kind: KindConnect, Detail: err.Error(), Status: status}
}

func NewFramingError(err error) *Error {
	return &Error{Kind: KindFraming, Detail: err.Error(), Status: StatusBadGateway}
}

func NewTruncatedError(err error) *Error {
	return &Error{Kind: KindTruncated, Detail: err.Error(), Status: StatusBadGateway}
}

// AsError extracts a transfer error from err.
func AsError(err error) (*Error, bool) {
	var terr *Error
	if errors.As(err, &terr) {
		return terr, true
	}
	return nil, false
}
