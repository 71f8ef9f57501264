package fetch

import (
	"http-inspector/application/http"
	"http-inspector/application/http/transfer"
)

// Handler receives the events of one exchange in wire order.
// Calls are made synchronously from the exchange goroutine, so a slow
// handler holds back further reads from the connection.
type Handler interface {
	// OnStatus is called once the final status line is read.
	// Interim 1xx responses are skipped, 101 excepted.
	OnStatus(line http.StatusLine)
	// OnHeaders is called with the whole head and the framing chosen for the body.
	OnHeaders(head http.Head, framing transfer.Framing)
	// OnBody is called with decoded payload bytes. chunk is only valid during the call.
	OnBody(chunk []byte)
	// OnDone is called exactly once. err is nil on a complete response.
	OnDone(err *transfer.Error)
}

// doneNotifier closes done after the wrapped handler saw OnDone.
type doneNotifier struct {
	Handler
	err  *transfer.Error
	done chan struct{}
}

func (n *doneNotifier) OnDone(err *transfer.Error) {
	defer close(n.done)
	n.err = err
	n.Handler.OnDone(err)
}
