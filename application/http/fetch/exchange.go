package fetch

import (
	"context"
	"time"

	"http-inspector/application/http"
	"http-inspector/application/http/semantic"
	"http-inspector/application/http/semantic/status"
	"http-inspector/application/http/transfer"
	"http-inspector/transport"

	"github.com/pkg/errors"
)

var errNoResponse = errors.New("connection closed before the response started")

type exchange struct {
	id       string
	addr     transport.Addr
	method   semantic.Method
	wire     http.Request
	skipBody bool
	handler  Handler

	// Per attempt.
	state    State
	received bool
	parser   *http.ResponseParser
	framing  transfer.Framing
	decoder  transfer.Decoder
	leftover bool
}

func (x *exchange) reset() {
	x.state = StateAwaitingStatusLine
	x.received = false
	x.parser = http.NewResponseParser()
	x.framing = transfer.Framing{}
	x.decoder = nil
	x.leftover = false
}

func (e *Engine) run(ctx context.Context, x *exchange) {
	logger := e.logger.With("id", x.id, "method", string(x.method), "addr", x.addr.String())
	logger.Debug("exchange started", "target", x.wire.Target)

	for attempt := uint(0); ; attempt++ {
		terr, retryable := e.attempt(ctx, x, attempt > 0)
		if terr == nil {
			logger.Debug("exchange done", "status", x.parser.Head().StatusCode, "framing", x.framing.Mode.String())
			x.handler.OnDone(nil)
			return
		}

		if retryable && x.method.IsRetryable() && attempt < e.opts.RetryLimit && ctx.Err() == nil {
			logger.Warn("retrying on a fresh connection", "attempt", attempt+1, "error", terr)
			continue
		}

		logger.Warn("exchange failed", "kind", terr.Kind.String(), "error", terr)
		x.state = StateErrored
		x.handler.OnDone(terr)
		return
	}
}

// attempt runs the exchange once. retryable is set when the failure
// happened before any response byte arrived.
func (e *Engine) attempt(ctx context.Context, x *exchange, fresh bool) (_ *transfer.Error, retryable bool) {
	x.reset()

	conn, reused, terr := e.acquire(ctx, x.addr, fresh)
	if terr != nil {
		return terr, true
	}
	e.logger.Debug("connection acquired", "id", x.id, "reused", reused)

	// Cancellation unblocks pending reads and writes.
	stop := context.AfterFunc(ctx, func() { _ = conn.SetDeadline(time.Unix(1, 0)) })

	terr, retryable = e.exchangeOn(ctx, x, conn)

	reusable := terr == nil && x.framing.Reusable && !x.leftover
	if !stop() {
		reusable = false
	}
	e.release(x, conn, reusable)

	return terr, retryable
}

func (e *Engine) exchangeOn(ctx context.Context, x *exchange, conn transport.Conn) (*transfer.Error, bool) {
	if err := http.NewRequestEncoder(conn, http.DefaultEncodeOptions).Encode(x.wire); err != nil {
		if ctx.Err() != nil {
			return transfer.NewConnectError(ctx.Err(), false), false
		}
		// A pooled connection the server already dropped fails here.
		return transfer.NewConnectError(errors.Wrap(err, "writing request"), false), true
	}

	buf := make([]byte, e.opts.ReadBufferSize)
	for {
		n, rerr := conn.Read(buf)
		if n > 0 {
			x.received = true
			if terr := x.feed(buf[:n]); terr != nil {
				return terr, false
			}
			if x.state == StateDone {
				return nil, false
			}
		}

		if rerr != nil {
			if ctx.Err() != nil {
				return transfer.NewConnectError(errors.Wrapf(ctx.Err(), "exchange interrupted in state %s", x.state), false), false
			}
			return x.eof(rerr)
		}
	}
}

// feed pushes bytes read from the connection through the head parser and
// the body decoder, emitting events as they complete.
func (x *exchange) feed(data []byte) *transfer.Error {
	for len(data) > 0 {
		switch x.state {
		case StateAwaitingStatusLine, StateAwaitingHeaders:
			done, rest, err := x.parser.Feed(data)

			// The status line is reported even when the header block
			// after it turns out malformed.
			if x.state == StateAwaitingStatusLine && x.parser.StatusParsed() {
				line := x.parser.Head().StatusLine
				if !isInterim(line.StatusCode) {
					x.state.advance(StateAwaitingHeaders)
					x.handler.OnStatus(line)
				}
			}
			if err != nil {
				return transfer.NewFramingError(err)
			}
			if !done {
				return nil
			}

			head := x.parser.Head()
			if isInterim(head.StatusCode) {
				x.parser.Reset()
				data = rest
				continue
			}

			framing, err := transfer.Decide(string(x.method), head.StatusCode, head.Version, head.Fields)
			if err != nil {
				// The body cannot be delimited, but the header block is whole.
				x.state.advance(StateReadingBody)
				x.handler.OnHeaders(head, framing)
				return transfer.NewFramingError(err)
			}
			if head.StatusCode == status.SwitchingProtocols.Code {
				// The connection now speaks another protocol.
				framing.Reusable = false
			}

			x.framing = framing
			x.decoder = transfer.NewDecoder(framing)
			x.state.advance(StateReadingBody)
			x.handler.OnHeaders(head, framing)

			data = rest
			if x.decoder.Done() {
				x.finish(data)
				return nil
			}

		case StateReadingBody:
			body, rest, err := x.decoder.Feed(data)
			if len(body) > 0 && !x.skipBody {
				x.handler.OnBody(body)
			}
			if err != nil {
				return transfer.NewFramingError(err)
			}

			data = rest
			if x.decoder.Done() {
				x.finish(data)
				return nil
			}

		default:
			return nil
		}
	}

	return nil
}

func (x *exchange) finish(rest []byte) {
	// Bytes past the message end make the connection unusable.
	x.leftover = len(rest) > 0
	x.state.advance(StateDone)
}

// eof handles the connection closing or failing mid-exchange.
func (x *exchange) eof(cause error) (*transfer.Error, bool) {
	switch x.state {
	case StateAwaitingStatusLine:
		if !x.received {
			return transfer.NewConnectError(errors.Wrap(errNoResponse, cause.Error()), false), true
		}
		return transfer.NewTruncatedError(errors.Wrap(cause, "inside the status line")), false

	case StateAwaitingHeaders:
		return transfer.NewTruncatedError(errors.Wrap(cause, "inside the header block")), false

	case StateReadingBody:
		if err := x.decoder.EOF(); err != nil {
			return transfer.NewTruncatedError(err), false
		}
		// Close-delimited body.
		x.framing.Reusable = false
		x.state.advance(StateDone)
		return nil, false
	}

	return nil, false
}

func isInterim(code uint) bool {
	return 100 <= code && code < 200 && code != status.SwitchingProtocols.Code
}
