package pipe

import (
	"context"
	"io"
	"sync"
	"testing"

	"http-inspector/transport"

	"github.com/stretchr/testify/suite"
	"go.uber.org/goleak"
)

type TransportTestSuite struct {
	suite.Suite

	transport *Transport
	addr      transport.Addr
}

func TestTransportTestSuite(t *testing.T) {
	suite.Run(t, new(TransportTestSuite))
}

func (s *TransportTestSuite) SetupTest() {
	s.transport = NewTransport()
	s.addr = transport.Addr{Host: "origin.test", Port: 80}
}

func (s *TransportTestSuite) TearDownTest() {
	goleak.VerifyNone(s.T())
}

func (s *TransportTestSuite) TestListen() {
	lis, err := s.transport.Listen(s.addr)
	s.Require().NoError(err)
	s.Require().NotNil(lis)

	_, err = s.transport.Listen(s.addr)
	s.ErrorIs(err, transport.ErrAddrAlreadyInUse)

	s.Require().NoError(lis.Close())
	s.ErrorIs(lis.Close(), transport.ErrConnListenerClosed)

	// The address is free again.
	lis, err = s.transport.Listen(s.addr)
	s.Require().NoError(err)
	s.NoError(lis.Close())
}

func (s *TransportTestSuite) TestDialRefused() {
	_, err := s.transport.Dial(context.Background(), s.addr)
	s.ErrorIs(err, transport.ErrConnRefused)

	lis, err := s.transport.Listen(s.addr)
	s.Require().NoError(err)
	s.Require().NoError(lis.Close())

	_, err = s.transport.Dial(context.Background(), s.addr)
	s.ErrorIs(err, transport.ErrConnRefused)
	s.Equal(2, s.transport.Dials(s.addr))
}

func (s *TransportTestSuite) TestDialCanceled() {
	lis, err := s.transport.Listen(s.addr)
	s.Require().NoError(err)
	defer lis.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.transport.Dial(ctx, s.addr)
	s.ErrorIs(err, context.Canceled)
}

func (s *TransportTestSuite) TestServe() {
	lis, err := s.transport.Listen(s.addr)
	s.Require().NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		Serve(ctx, lis, func(conn transport.Conn) {
			_, _ = io.Copy(conn, conn)
		})
	}()

	for range 3 {
		conn, err := s.transport.Dial(context.Background(), s.addr)
		s.Require().NoError(err)

		go func() { _, _ = conn.Write([]byte("ping")) }()

		buf := make([]byte, 4)
		_, err = io.ReadFull(conn, buf)
		s.Require().NoError(err)
		s.Equal("ping", string(buf))
		s.Require().NoError(conn.Close())
	}

	// A connection left open is closed by Serve on shutdown.
	idle, err := s.transport.Dial(context.Background(), s.addr)
	s.Require().NoError(err)

	cancel()
	wg.Wait()

	_, err = idle.Read(make([]byte, 1))
	s.ErrorIs(err, io.EOF)
	s.NoError(lis.Close())
	s.Equal(4, s.transport.Dials(s.addr))
}
