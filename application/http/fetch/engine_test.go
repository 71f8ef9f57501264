package fetch

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log/slog"
	nethttp "net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"http-inspector/application/http"
	"http-inspector/application/http/semantic"
	"http-inspector/application/http/transfer"
	"http-inspector/application/util/ratelimit"
	"http-inspector/transport"
	"http-inspector/transport/pipe"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/goleak"
)

// recorder keeps every event of one exchange.
type recorder struct {
	events  []string
	status  http.StatusLine
	head    http.Head
	framing transfer.Framing
	body    bytes.Buffer
	err     *transfer.Error
}

func (r *recorder) OnStatus(line http.StatusLine) {
	r.events = append(r.events, "status")
	r.status = line
}

func (r *recorder) OnHeaders(head http.Head, framing transfer.Framing) {
	r.events = append(r.events, "headers")
	r.head, r.framing = head, framing
}

func (r *recorder) OnBody(chunk []byte) {
	if n := len(r.events); n == 0 || r.events[n-1] != "body" {
		r.events = append(r.events, "body")
	}
	r.body.Write(chunk)
}

func (r *recorder) OnDone(err *transfer.Error) {
	r.events = append(r.events, "done")
	r.err = err
}

type EngineTestSuite struct {
	suite.Suite

	transport *pipe.Transport
	engine    *Engine
	addr      transport.Addr

	ctx     context.Context
	cancel  context.CancelFunc
	servers sync.WaitGroup
}

func TestEngineTestSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (s *EngineTestSuite) SetupTest() {
	s.transport = pipe.NewTransport()
	s.addr = transport.Addr{Host: "origin.test", Port: 80}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.engine = s.newEngine(DefaultOptions(), nil)
}

func (s *EngineTestSuite) TearDownTest() {
	_ = s.engine.Close()
	s.cancel()
	s.servers.Wait()
	goleak.VerifyNone(s.T())
}

func (s *EngineTestSuite) newEngine(opts Options, limiter *ratelimit.Limiter) *Engine {
	engine, err := New(s.transport, limiter, slog.New(slog.DiscardHandler), clock.New(), opts)
	s.Require().NoError(err)
	return engine
}

// serve answers every connection to s.addr with handle.
func (s *EngineTestSuite) serve(handle func(conn transport.Conn, r *bufio.Reader)) {
	lis, err := s.transport.Listen(s.addr)
	s.Require().NoError(err)

	s.servers.Add(1)
	go func() {
		defer s.servers.Done()
		defer lis.Close()
		pipe.Serve(s.ctx, lis, func(conn transport.Conn) {
			handle(conn, bufio.NewReader(conn))
		})
	}()
}

// respond answers each request on the connection with the next response.
func respond(responses ...string) func(conn transport.Conn, r *bufio.Reader) {
	return func(conn transport.Conn, r *bufio.Reader) {
		for _, response := range responses {
			req, err := nethttp.ReadRequest(r)
			if err != nil {
				return
			}
			_, _ = io.Copy(io.Discard, req.Body)
			if _, err := io.WriteString(conn, response); err != nil {
				return
			}
		}
		// Keep the connection open until the client goes away.
		_, _ = io.Copy(io.Discard, r)
	}
}

func (s *EngineTestSuite) get(target string) *semantic.Request {
	return &semantic.Request{Method: semantic.MethodGet, URI: "http://origin.test" + target}
}

func (s *EngineTestSuite) TestCountedBody() {
	var seen *nethttp.Request
	s.serve(func(conn transport.Conn, r *bufio.Reader) {
		req, err := nethttp.ReadRequest(r)
		if err != nil {
			return
		}
		seen = req
		_, _ = io.WriteString(conn, "HTTP/1.1 200 OK\r\nContent-Length: 5\r\nContent-Type: text/plain\r\n\r\nhello")
		_, _ = io.Copy(io.Discard, r)
	})

	rec := &recorder{}
	s.Require().NoError(s.engine.Fetch(s.ctx, s.get("/a?b=c"), rec))

	s.Equal([]string{"status", "headers", "body", "done"}, rec.events)
	s.Nil(rec.err)
	s.Equal(uint(200), rec.status.StatusCode)
	s.Equal(transfer.Framing{Mode: transfer.ModeCounted, Length: 5, Reusable: true}, rec.framing)
	s.Equal("hello", rec.body.String())

	s.Require().NotNil(seen)
	s.Equal("/a?b=c", seen.RequestURI)
	s.Equal("origin.test", seen.Host)
	s.Equal("keep-alive", seen.Header.Get("Connection"))
	s.Equal(uint(1), s.engine.IdleConns(s.addr))
}

func (s *EngineTestSuite) TestFramingModes() {
	testcases := []struct {
		desc     string
		method   semantic.Method
		response string
		body     string
		mode     transfer.Mode
		idle     uint
	}{
		{
			desc:     "chunked with trailers",
			response: "HTTP/1.1 200 OK\r\nTransfer-Encoding: chunked\r\n\r\n5;x=y\r\nhello\r\n6\r\n world\r\n0\r\nX-Trailer: 1\r\n\r\n",
			body:     "hello world",
			mode:     transfer.ModeChunked,
			idle:     1,
		},
		{
			desc:     "close delimited",
			response: "HTTP/1.0 200 OK\r\n\r\nuntil close",
			body:     "until close",
			mode:     transfer.ModeClose,
		},
		{
			desc:     "head ignores content-length",
			method:   semantic.MethodHead,
			response: "HTTP/1.1 200 OK\r\nContent-Length: 100\r\n\r\n",
			mode:     transfer.ModeCounted,
			idle:     1,
		},
		{
			desc:     "no content",
			response: "HTTP/1.1 204 No Content\r\nContent-Length: 3\r\n\r\n",
			mode:     transfer.ModeCounted,
			idle:     1,
		},
		{
			desc:     "interim responses are skipped",
			response: "HTTP/1.1 100 Continue\r\n\r\nHTTP/1.1 103 Early Hints\r\nLink: </a>\r\n\r\nHTTP/1.1 200 OK\r\nContent-Length: 2\r\n\r\nok",
			body:     "ok",
			mode:     transfer.ModeCounted,
			idle:     1,
		},
		{
			desc:     "bytes past the message end",
			response: "HTTP/1.1 200 OK\r\nContent-Length: 2\r\n\r\nokEXTRA",
			body:     "ok",
			mode:     transfer.ModeCounted,
		},
	}

	for _, tc := range testcases {
		s.Run(tc.desc, func() {
			s.TearDownTest()
			s.SetupTest()

			s.serve(func(conn transport.Conn, r *bufio.Reader) {
				if _, err := nethttp.ReadRequest(r); err != nil {
					return
				}
				_, _ = io.WriteString(conn, tc.response)
				if tc.mode != transfer.ModeClose {
					_, _ = io.Copy(io.Discard, r)
				}
			})

			req := s.get("/")
			if tc.method != "" {
				req.Method = tc.method
			}

			rec := &recorder{}
			s.Require().NoError(s.engine.Fetch(s.ctx, req, rec))
			s.Equal(tc.body, rec.body.String())
			s.Equal(tc.mode, rec.framing.Mode)
			s.Equal("status", rec.events[0])
			s.Equal(tc.idle, s.engine.IdleConns(s.addr))
		})
	}
}

func (s *EngineTestSuite) TestPoolReuse() {
	var conns atomic.Int32
	s.serve(func(conn transport.Conn, r *bufio.Reader) {
		conns.Add(1)
		respond(
			"HTTP/1.1 200 OK\r\nContent-Length: 1\r\n\r\na",
			"HTTP/1.1 200 OK\r\nContent-Length: 1\r\n\r\nb",
			"HTTP/1.1 200 OK\r\nContent-Length: 1\r\n\r\nc",
		)(conn, r)
	})

	for _, want := range []string{"a", "b", "c"} {
		rec := &recorder{}
		s.Require().NoError(s.engine.Fetch(s.ctx, s.get("/"), rec))
		s.Equal(want, rec.body.String())
	}

	s.Equal(int32(1), conns.Load())
	s.Equal(1, s.transport.Dials(s.addr))
}

func (s *EngineTestSuite) TestConnectionCloseIsNotPooled() {
	s.serve(respond("HTTP/1.1 200 OK\r\nConnection: close\r\nContent-Length: 2\r\n\r\nok"))

	rec := &recorder{}
	s.Require().NoError(s.engine.Fetch(s.ctx, s.get("/"), rec))
	s.False(rec.framing.Reusable)
	s.Zero(s.engine.IdleConns(s.addr))
}

func (s *EngineTestSuite) TestRetry() {
	testcases := []struct {
		desc       string
		method     semantic.Method
		failFirst  int32
		wantErr    bool
		wantDials  int
		wantEvents []string
	}{
		{
			desc:       "get recovers on a fresh connection",
			method:     semantic.MethodGet,
			failFirst:  1,
			wantDials:  2,
			wantEvents: []string{"status", "headers", "body", "done"},
		},
		{
			desc:       "budget of two retries",
			method:     semantic.MethodGet,
			failFirst:  2,
			wantDials:  3,
			wantEvents: []string{"status", "headers", "body", "done"},
		},
		{
			desc:       "budget exhausted",
			method:     semantic.MethodHead,
			failFirst:  3,
			wantErr:    true,
			wantDials:  3,
			wantEvents: []string{"done"},
		},
		{
			desc:       "post is never retried",
			method:     semantic.MethodPost,
			failFirst:  1,
			wantErr:    true,
			wantDials:  1,
			wantEvents: []string{"done"},
		},
	}

	for _, tc := range testcases {
		s.Run(tc.desc, func() {
			s.TearDownTest()
			s.SetupTest()

			var seen atomic.Int32
			s.serve(func(conn transport.Conn, r *bufio.Reader) {
				if seen.Add(1) <= tc.failFirst {
					// Drop the connection without a response byte.
					_, _ = nethttp.ReadRequest(r)
					return
				}
				respond("HTTP/1.1 200 OK\r\nContent-Length: 2\r\n\r\nok")(conn, r)
			})

			req := s.get("/")
			req.Method = tc.method

			rec := &recorder{}
			err := s.engine.Fetch(s.ctx, req, rec)
			s.Equal(tc.wantEvents, rec.events)
			s.Equal(tc.wantDials, s.transport.Dials(s.addr))

			if !tc.wantErr {
				s.NoError(err)
				return
			}

			terr, ok := transfer.AsError(err)
			s.Require().True(ok)
			s.Equal(transfer.KindConnect, terr.Kind)
			s.Equal(transfer.StatusBadGateway, terr.Status)
			s.Same(terr, rec.err)
		})
	}
}

func (s *EngineTestSuite) TestStalePooledConnection() {
	// Each connection serves one response, then goes away.
	s.serve(func(conn transport.Conn, r *bufio.Reader) {
		if _, err := nethttp.ReadRequest(r); err != nil {
			return
		}
		_, _ = io.WriteString(conn, "HTTP/1.1 200 OK\r\nContent-Length: 2\r\n\r\nok")
	})

	for range 2 {
		rec := &recorder{}
		s.Require().NoError(s.engine.Fetch(s.ctx, s.get("/"), rec))
		s.Equal("ok", rec.body.String())
	}
	s.Equal(2, s.transport.Dials(s.addr))
}

func (s *EngineTestSuite) TestTransferErrors() {
	testcases := []struct {
		desc     string
		response string
		kind     transfer.ErrorKind
		body     string
		events   []string
	}{
		{
			desc:     "malformed status line",
			response: "HTTP/1.1 OK\r\n\r\n",
			kind:     transfer.KindFraming,
			events:   []string{"done"},
		},
		{
			desc:     "colon-less header",
			response: "HTTP/1.1 200 OK\r\nfoo bar\r\n\r\n",
			kind:     transfer.KindFraming,
			events:   []string{"status", "done"},
		},
		{
			desc:     "conflicting content-length",
			response: "HTTP/1.1 200 OK\r\nContent-Length: 1\r\nContent-Length: 2\r\n\r\n",
			kind:     transfer.KindFraming,
			events:   []string{"status", "headers", "done"},
		},
		{
			desc:     "invalid content-length",
			response: "HTTP/1.1 200 OK\r\nContent-Length: abc\r\nETag: \"x\"\r\n\r\n",
			kind:     transfer.KindFraming,
			events:   []string{"status", "headers", "done"},
		},
		{
			desc:     "invalid chunk size",
			response: "HTTP/1.1 200 OK\r\nTransfer-Encoding: chunked\r\n\r\n2\r\nok\r\nzz\r\n",
			kind:     transfer.KindFraming,
			body:     "ok",
			events:   []string{"status", "headers", "body", "done"},
		},
		{
			desc:     "truncated counted body",
			response: "HTTP/1.1 200 OK\r\nContent-Length: 10\r\n\r\nhello",
			kind:     transfer.KindTruncated,
			body:     "hello",
			events:   []string{"status", "headers", "body", "done"},
		},
		{
			desc:     "truncated chunked body",
			response: "HTTP/1.1 200 OK\r\nTransfer-Encoding: chunked\r\n\r\n5\r\nhello\r\n",
			kind:     transfer.KindTruncated,
			body:     "hello",
			events:   []string{"status", "headers", "body", "done"},
		},
		{
			desc:     "truncated header block",
			response: "HTTP/1.1 200 OK\r\nServer: x\r\n",
			kind:     transfer.KindTruncated,
			events:   []string{"status", "done"},
		},
	}

	for _, tc := range testcases {
		s.Run(tc.desc, func() {
			s.TearDownTest()
			s.SetupTest()

			s.serve(func(conn transport.Conn, r *bufio.Reader) {
				if _, err := nethttp.ReadRequest(r); err != nil {
					return
				}
				_, _ = io.WriteString(conn, tc.response)
			})

			rec := &recorder{}
			err := s.engine.Fetch(s.ctx, s.get("/"), rec)

			terr, ok := transfer.AsError(err)
			s.Require().True(ok, "%v", err)
			s.Equal(tc.kind, terr.Kind)
			s.Equal(transfer.StatusBadGateway, terr.Status)
			s.Equal(tc.events, rec.events)
			s.Equal(tc.body, rec.body.String())
			// Framing and truncation are never retried.
			s.Equal(1, s.transport.Dials(s.addr))
			s.Zero(s.engine.IdleConns(s.addr))
		})
	}
}

func (s *EngineTestSuite) TestConnectRefused() {
	rec := &recorder{}
	err := s.engine.Fetch(s.ctx, s.get("/"), rec)

	terr, ok := transfer.AsError(err)
	s.Require().True(ok)
	s.Equal(transfer.KindConnect, terr.Kind)
	s.Equal(transfer.StatusBadGateway, terr.Status)
	s.Equal(3, s.transport.Dials(s.addr))
}

func (s *EngineTestSuite) TestConnectTimeout() {
	opts := DefaultOptions()
	opts.ConnectTimeout = 20 * time.Millisecond
	s.Require().NoError(s.engine.Close())
	s.engine = s.newEngine(opts, nil)

	// Listening without accepting leaves the dial pending.
	lis, err := s.transport.Listen(s.addr)
	s.Require().NoError(err)
	defer lis.Close()

	req := s.get("/")
	req.Method = semantic.MethodPost

	rec := &recorder{}
	err = s.engine.Fetch(s.ctx, req, rec)

	terr, ok := transfer.AsError(err)
	s.Require().True(ok)
	s.Equal(transfer.KindConnect, terr.Kind)
	s.Equal(transfer.StatusGatewayTimeout, terr.Status)
}

func (s *EngineTestSuite) TestSkipBody() {
	s.serve(respond("HTTP/1.1 200 OK\r\nContent-Length: 5\r\n\r\nhello"))

	req := s.get("/")
	req.SkipBody = true

	rec := &recorder{}
	s.Require().NoError(s.engine.Fetch(s.ctx, req, rec))
	s.Equal([]string{"status", "headers", "done"}, rec.events)
	s.Equal(uint(1), s.engine.IdleConns(s.addr))
}

func (s *EngineTestSuite) TestRequestBody() {
	var got string
	s.serve(func(conn transport.Conn, r *bufio.Reader) {
		req, err := nethttp.ReadRequest(r)
		if err != nil {
			return
		}
		b, _ := io.ReadAll(req.Body)
		got = string(b)
		_, _ = io.WriteString(conn, "HTTP/1.1 201 Created\r\nLocation: /x\r\nContent-Length: 0\r\n\r\n")
		_, _ = io.Copy(io.Discard, r)
	})

	req := &semantic.Request{
		Method:  semantic.MethodPost,
		URI:     "http://origin.test/",
		Headers: []http.Field{http.NewField("Content-Length", "4")},
		Body:    []byte("data"),
	}

	rec := &recorder{}
	s.Require().NoError(s.engine.Fetch(s.ctx, req, rec))
	s.Equal("data", got)
	s.Equal(uint(201), rec.status.StatusCode)
}

func (s *EngineTestSuite) TestStartValidation() {
	testcases := []struct {
		desc    string
		request *semantic.Request
		wantErr error
	}{
		{
			desc:    "no scheme",
			request: &semantic.Request{URI: "//origin.test/"},
			wantErr: ErrMissingScheme,
		},
		{
			desc:    "https",
			request: &semantic.Request{URI: "https://origin.test/"},
			wantErr: ErrTLSUnsupported,
		},
		{
			desc:    "other scheme",
			request: &semantic.Request{URI: "ftp://origin.test/"},
			wantErr: ErrUnsupportedScheme,
		},
		{
			desc:    "body without content-length",
			request: &semantic.Request{Method: semantic.MethodPost, URI: "http://origin.test/", Body: []byte("x")},
			wantErr: ErrBodyWithoutLength,
		},
		{
			desc: "content-length mismatch",
			request: &semantic.Request{
				Method:  semantic.MethodPost,
				URI:     "http://origin.test/",
				Headers: []http.Field{http.NewField("Content-Length", "3")},
				Body:    []byte("x"),
			},
			wantErr: ErrBodyLengthMismatch,
		},
	}

	for _, tc := range testcases {
		s.Run(tc.desc, func() {
			err := s.engine.Start(s.ctx, tc.request, &recorder{})
			s.ErrorIs(err, tc.wantErr)
		})
	}

	s.Error(s.engine.Start(s.ctx, &semantic.Request{URI: "http://exa mple/"}, &recorder{}))
	s.Zero(s.transport.Dials(s.addr))
}

func (s *EngineTestSuite) TestRateLimit() {
	limiter := ratelimit.New(clock.New())
	limiter.Configure("origin", 1, time.Hour)

	s.Require().NoError(s.engine.Close())
	s.engine = s.newEngine(DefaultOptions(), limiter)
	s.serve(respond("HTTP/1.1 200 OK\r\nContent-Length: 0\r\n\r\n"))

	s.Require().NoError(s.engine.Fetch(s.ctx, s.get("/"), &recorder{}))

	err := s.engine.Start(s.ctx, s.get("/"), &recorder{})
	s.ErrorIs(err, ratelimit.ErrViolation)
	s.Equal(1, s.transport.Dials(s.addr))
}

func (s *EngineTestSuite) TestClose() {
	s.serve(respond("HTTP/1.1 200 OK\r\nContent-Length: 0\r\n\r\n"))
	s.Require().NoError(s.engine.Fetch(s.ctx, s.get("/"), &recorder{}))
	s.Equal(uint(1), s.engine.IdleConns(s.addr))

	s.Require().NoError(s.engine.Close())
	s.Zero(s.engine.IdleConns(s.addr))
	s.ErrorIs(s.engine.Start(s.ctx, s.get("/"), &recorder{}), ErrEngineClosed)
	s.ErrorIs(s.engine.Close(), ErrEngineClosed)
}

func (s *EngineTestSuite) TestCancel() {
	started := make(chan struct{})
	s.serve(func(conn transport.Conn, r *bufio.Reader) {
		if _, err := nethttp.ReadRequest(r); err != nil {
			return
		}
		_, _ = io.WriteString(conn, "HTTP/1.1 200 OK\r\nContent-Length: 10\r\n\r\nhel")
		close(started)
		_, _ = io.Copy(io.Discard, r)
	})

	ctx, cancel := context.WithCancel(s.ctx)
	go func() {
		<-started
		cancel()
	}()

	rec := &recorder{}
	err := s.engine.Fetch(ctx, s.get("/"), rec)

	terr, ok := transfer.AsError(err)
	s.Require().True(ok)
	s.Equal(transfer.KindConnect, terr.Kind)
	s.Equal("done", rec.events[len(rec.events)-1])
	s.Zero(s.engine.IdleConns(s.addr))
}
