package fetch

import (
	"sync"

	"http-inspector/lib/ds/stack"
	"http-inspector/transport"
)

// connPool keeps idle connections per origin. The most recently
// released connection is handed out first. Idle connections are not
// checked before reuse; a dead one surfaces as a close before the
// response starts, which the retry path handles.
type connPool struct {
	idle   map[transport.Addr]*stack.Stack[transport.Conn]
	closed bool
	mu     sync.Mutex
}

func newConnPool() *connPool {
	return &connPool{idle: make(map[transport.Addr]*stack.Stack[transport.Conn])}
}

func (p *connPool) get(addr transport.Addr) (transport.Conn, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	conns, ok := p.idle[addr]
	if !ok {
		return nil, false
	}

	conn, err := conns.Pop()
	if conns.Len() == 0 {
		delete(p.idle, addr)
	}
	if err != nil {
		return nil, false
	}
	return conn, true
}

// put returns conn to the pool. It reports false once the pool is
// closed, and the caller keeps ownership of conn.
func (p *connPool) put(addr transport.Addr, conn transport.Conn) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return false
	}

	conns, ok := p.idle[addr]
	if !ok {
		conns = stack.New[transport.Conn](1)
		p.idle[addr] = conns
	}
	conns.Push(conn)

	return true
}

func (p *connPool) len(addr transport.Addr) uint {
	p.mu.Lock()
	defer p.mu.Unlock()

	if conns, ok := p.idle[addr]; ok {
		return conns.Len()
	}
	return 0
}

// close closes every idle connection. Later puts are refused.
func (p *connPool) close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	for addr, conns := range p.idle {
		for _, conn := range conns.Drain() {
			_ = conn.Close()
		}
		delete(p.idle, addr)
	}
}
