// Package pipe is an in-memory transport. Connections are synchronous
// net.Pipe pairs, so nothing is buffered between writer and reader.
package pipe

import (
	"context"
	"net"
	"sync"

	"http-inspector/transport"
)

type Transport struct {
	listeners map[transport.Addr]*Listener
	dials     map[transport.Addr]int
	mu        sync.Mutex
}

var _ transport.ConnDialer = (*Transport)(nil)

func NewTransport() *Transport {
	return &Transport{
		listeners: make(map[transport.Addr]*Listener),
		dials:     make(map[transport.Addr]int),
	}
}

func (t *Transport) Dial(ctx context.Context, addr transport.Addr) (transport.Conn, error) {
	t.mu.Lock()
	listener, ok := t.listeners[addr]
	t.dials[addr]++
	t.mu.Unlock()

	if !ok {
		return nil, transport.ErrConnRefused
	}

	client, server := net.Pipe()

	select {
	case <-ctx.Done():
	case <-listener.closed:
	case listener.requests <- server:
		return client, nil
	}

	_ = client.Close()
	_ = server.Close()
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return nil, transport.ErrConnRefused
}

// Dials reports how many times addr was dialed, refused dials included.
func (t *Transport) Dials(addr transport.Addr) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dials[addr]
}

func (t *Transport) Listen(addr transport.Addr) (*Listener, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.listeners[addr]; ok {
		return nil, transport.ErrAddrAlreadyInUse
	}

	l := &Listener{
		addr:      addr,
		transport: t,
		requests:  make(chan net.Conn),
		closed:    make(chan struct{}),
	}
	t.listeners[addr] = l

	return l, nil
}

type Listener struct {
	addr      transport.Addr
	transport *Transport

	requests chan net.Conn
	closed   chan struct{}
	once     sync.Once
}

var _ transport.ConnListener = (*Listener)(nil)

func (l *Listener) Accept(ctx context.Context) (transport.Conn, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-l.closed:
		return nil, transport.ErrConnListenerClosed
	case conn := <-l.requests:
		return conn, nil
	}
}

func (l *Listener) Close() error {
	err := transport.ErrConnListenerClosed
	l.once.Do(func() {
		close(l.closed)

		l.transport.mu.Lock()
		delete(l.transport.listeners, l.addr)
		l.transport.mu.Unlock()

		err = nil
	})
	return err
}

// Serve accepts connections and runs handle for each on its own goroutine
// until ctx is done or the listener is closed. Connections still open at
// that point are closed, and Serve returns once every handler has returned.
func Serve(ctx context.Context, l *Listener, handle func(conn transport.Conn)) {
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		conns []transport.Conn
	)

	for {
		conn, err := l.Accept(ctx)
		if err != nil {
			break
		}

		mu.Lock()
		conns = append(conns, conn)
		mu.Unlock()

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer conn.Close()
			handle(conn)
		}()
	}

	mu.Lock()
	for _, conn := range conns {
		_ = conn.Close()
	}
	mu.Unlock()

	wg.Wait()
}
