// Package iolib bridges push-style byte delivery to io consumers.
package iolib

import (
	"io"
	"sync"
)

// FeedReader hands pushed chunks to a consumer reading on another
// goroutine. Feed returns only once the consumer has taken the whole
// chunk and asked for more, or has stopped, so the effects of a chunk
// are visible to the feeder when Feed returns.
type FeedReader struct {
	in      chan []byte
	ack     chan struct{}
	stopped chan struct{}

	cur     []byte
	started bool
	eof     bool

	stopOnce  sync.Once
	closeOnce sync.Once
}

var _ io.Reader = (*FeedReader)(nil)

func NewFeedReader() *FeedReader {
	return &FeedReader{
		in:      make(chan []byte),
		ack:     make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Read is called by the consumer. It returns io.EOF after Close.
func (r *FeedReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	for len(r.cur) == 0 {
		if r.eof {
			return 0, io.EOF
		}
		if r.started {
			// The previous chunk is used up.
			r.ack <- struct{}{}
		}
		r.started = true

		chunk, ok := <-r.in
		if !ok {
			r.eof = true
			return 0, io.EOF
		}
		r.cur = chunk
	}

	n := copy(p, r.cur)
	r.cur = r.cur[n:]
	return n, nil
}

// Feed passes chunk to the consumer. It reports false once the
// consumer has stopped.
func (r *FeedReader) Feed(chunk []byte) bool {
	if len(chunk) == 0 {
		return !r.Stopped()
	}

	select {
	case r.in <- chunk:
	case <-r.stopped:
		return false
	}

	select {
	case <-r.ack:
		return true
	case <-r.stopped:
		return false
	}
}

// Stop is called by the consumer when it will not read again.
func (r *FeedReader) Stop() {
	r.stopOnce.Do(func() { close(r.stopped) })
}

func (r *FeedReader) Stopped() bool {
	select {
	case <-r.stopped:
		return true
	default:
		return false
	}
}

// Close ends the input. The consumer reads io.EOF once the pending
// chunk is used up. Feed must not be called after Close.
func (r *FeedReader) Close() error {
	r.closeOnce.Do(func() { close(r.in) })
	return nil
}
