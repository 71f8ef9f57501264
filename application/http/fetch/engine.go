// Package fetch runs HTTP/1.x exchanges over pooled byte-stream connections.
package fetch

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"http-inspector/application/http"
	"http-inspector/application/http/semantic"
	"http-inspector/application/http/transfer"
	"http-inspector/application/util/ratelimit"
	"http-inspector/application/util/uri"
	"http-inspector/transport"

	"github.com/benbjohnson/clock"
	"github.com/dchest/uniuri"
	"github.com/pkg/errors"
)

var (
	ErrEngineClosed       = errors.New("engine is closed")
	ErrMissingScheme      = errors.New("URI must carry an explicit scheme and authority")
	ErrUnsupportedScheme  = errors.New("unsupported URI scheme")
	ErrTLSUnsupported     = errors.New("https is not supported")
	ErrBodyWithoutLength  = errors.New("request body requires a Content-Length field")
	ErrBodyLengthMismatch = errors.New("Content-Length does not match the request body")
)

// Engine issues exchanges. It owns the connection pool and tracks
// in-flight exchanges so Close can wait for them.
type Engine struct {
	dialer  transport.ConnDialer
	limiter *ratelimit.Limiter

	logger *slog.Logger
	clock  clock.Clock
	opts   Options

	pool *connPool

	inflight sync.WaitGroup
	closed   bool
	mu       sync.Mutex // guards closed and inflight.Add
}

// New creates an engine. limiter may be nil.
func New(
	dialer transport.ConnDialer,
	limiter *ratelimit.Limiter,
	logger *slog.Logger,
	clock clock.Clock,
	opts Options,
) (*Engine, error) {
	if err := opts.validate(); err != nil {
		return nil, errors.Wrap(err, "validating options")
	}

	return &Engine{
		dialer:  dialer,
		limiter: limiter,
		logger:  logger,
		clock:   clock,
		opts:    opts,
		pool:    newConnPool(),
	}, nil
}

// Start validates request and begins the exchange on its own goroutine.
// Validation failures are returned here; everything after that is
// reported to h, ending with exactly one OnDone.
func (e *Engine) Start(ctx context.Context, request *semantic.Request, h Handler) error {
	x, err := e.prepare(request)
	if err != nil {
		return err
	}
	x.handler = h

	if e.limiter != nil {
		if err := e.limiter.Increment(e.opts.RateLimitMetric, x.addr.Host); err != nil {
			return errors.Wrap(err, "consulting rate limiter")
		}
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrEngineClosed
	}
	e.inflight.Add(1)
	e.mu.Unlock()

	go func() {
		defer e.inflight.Done()
		e.run(ctx, x)
	}()

	return nil
}

// Fetch runs the exchange and blocks until h saw OnDone.
// A transfer failure is returned as a *transfer.Error.
func (e *Engine) Fetch(ctx context.Context, request *semantic.Request, h Handler) error {
	n := &doneNotifier{Handler: h, done: make(chan struct{})}
	if err := e.Start(ctx, request, n); err != nil {
		return err
	}

	<-n.done
	if n.err != nil {
		return n.err
	}
	return nil
}

// Close refuses new exchanges, waits for in-flight ones and closes
// the pooled connections.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrEngineClosed
	}
	e.closed = true
	e.mu.Unlock()

	e.inflight.Wait()
	e.pool.close()

	return nil
}

// IdleConns reports the number of pooled connections for addr.
func (e *Engine) IdleConns(addr transport.Addr) uint { return e.pool.len(addr) }

func (e *Engine) prepare(request *semantic.Request) (*exchange, error) {
	target, err := uri.Parse(request.URI)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing URI %q", request.URI)
	}
	if target.Scheme == "" || target.Authority == nil || target.Authority.Host == "" {
		return nil, errors.Wrapf(ErrMissingScheme, "%q", request.URI)
	}

	switch target.Scheme {
	case "http":
	case "https":
		return nil, ErrTLSUnsupported
	default:
		return nil, errors.Wrapf(ErrUnsupportedScheme, "%q", target.Scheme)
	}

	if err := checkBodyLength(request); err != nil {
		return nil, err
	}

	method := request.Method
	if method == "" {
		method = semantic.MethodGet
	}

	host, port := target.Authority.HostPort(semantic.DefaultPort(target.Scheme))

	headers := make([]http.Field, 0, len(request.Headers)+3)
	if _, ok := request.Header("Host"); !ok {
		hostValue := target.Authority.Host
		if target.Authority.Port != nil && port != semantic.DefaultPort(target.Scheme) {
			hostValue += ":" + strconv.FormatUint(uint64(port), 10)
		}
		headers = append(headers, http.NewField("Host", hostValue))
	}
	headers = append(headers, request.Headers...)
	if _, ok := request.Header("Connection"); !ok {
		headers = append(headers, http.NewField("Connection", "keep-alive"))
	}
	if _, ok := request.Header("User-Agent"); !ok && e.opts.UserAgent != "" {
		headers = append(headers, http.NewField("User-Agent", e.opts.UserAgent))
	}

	return &exchange{
		id:       uniuri.NewLen(8),
		addr:     transport.Addr{Host: host, Port: port},
		method:   method,
		skipBody: request.SkipBody,
		wire: http.Request{
			Method:  string(method),
			Target:  target.RequestTarget(),
			Version: http.Version11,
			Headers: headers,
			Body:    request.Body,
		},
	}, nil
}

func checkBodyLength(request *semantic.Request) error {
	value, ok := request.Header("Content-Length")
	if !ok {
		if len(request.Body) > 0 {
			return ErrBodyWithoutLength
		}
		return nil
	}

	length, err := strconv.ParseUint(value, 10, 64)
	if err != nil || length != uint64(len(request.Body)) {
		return errors.Wrapf(ErrBodyLengthMismatch, "%q for %d bytes", value, len(request.Body))
	}
	return nil
}

// acquire pops an idle connection for addr, or dials a new one when
// fresh is set or none is idle.
func (e *Engine) acquire(ctx context.Context, addr transport.Addr, fresh bool) (transport.Conn, bool, *transfer.Error) {
	if !fresh {
		if conn, ok := e.pool.get(addr); ok {
			return conn, true, nil
		}
	}

	dialCtx, cancel := e.clock.WithTimeout(ctx, e.opts.ConnectTimeout)
	defer cancel()

	conn, err := e.dialer.Dial(dialCtx, addr)
	if err != nil {
		timeout := ctx.Err() == nil && errors.Is(dialCtx.Err(), context.DeadlineExceeded)
		return nil, false, transfer.NewConnectError(errors.Wrapf(err, "connecting to %s", addr), timeout)
	}
	return conn, false, nil
}

// release pools conn when the exchange left it reusable, and closes it otherwise.
func (e *Engine) release(x *exchange, conn transport.Conn, reusable bool) {
	if reusable && e.pool.put(x.addr, conn) {
		e.logger.Debug("connection released to pool", "id", x.id, "addr", x.addr.String())
		return
	}
	_ = conn.Close()
}
