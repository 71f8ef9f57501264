package transfer

import (
	"github.com/pkg/errors"
)

// Decoder delimits a response body from pushed bytes.
type Decoder interface {
	// Feed consumes data. body is the payload found in data,
	// rest is whatever follows the end of the message.
	Feed(data []byte) (body, rest []byte, err error)
	// Done reports whether the body end has been reached.
	Done() bool
	// EOF tells the decoder that the connection was closed.
	// It returns an error when that close cuts the body short.
	EOF() error
}

// NewDecoder returns the decoder for the given framing.
func NewDecoder(f Framing) Decoder {
	switch f.Mode {
	case ModeCounted:
		return &countedDecoder{remaining: f.Length}
	case ModeChunked:
		return newChunkedDecoder()
	default:
		return &closeDecoder{}
	}
}

var ErrBodyTruncated = errors.New("connection closed before body end")

type countedDecoder struct {
	remaining uint64
	received  uint64
}

func (d *countedDecoder) Feed(data []byte) (body, rest []byte, err error) {
	if d.remaining == 0 {
		return nil, data, nil
	}

	n := uint64(len(data))
	if n > d.remaining {
		n = d.remaining
	}

	d.remaining -= n
	d.received += n

	return data[:n], data[n:], nil
}

func (d *countedDecoder) Done() bool { return d.remaining == 0 }

func (d *countedDecoder) EOF() error {
	if d.remaining > 0 {
		return errors.Wrapf(ErrBodyTruncated, "got %d bytes, %d more expected", d.received, d.remaining)
	}
	return nil
}

type closeDecoder struct{}

func (d *closeDecoder) Feed(data []byte) (body, rest []byte, err error) { return data, nil, nil }

func (d *closeDecoder) Done() bool { return false }

// Close is the normal terminator in this mode.
func (d *closeDecoder) EOF() error { return nil }
