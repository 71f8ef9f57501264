package message

import (
	"bufio"
	"io"

	iolib "http-inspector/lib/io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/pkg/errors"
)

// inflater undoes one content coding while payload chunks are pushed to it.
// Decoded bytes go to sink on the inflater goroutine, but never after
// feed or close returned.
type inflater struct {
	feed *iolib.FeedReader
	sink func([]byte)
	done chan struct{}

	// Set before done is closed.
	err    error
	opened bool
}

// decodable reports whether coding can be undone.
func decodable(coding string) bool {
	switch coding {
	case "gzip", "x-gzip", "deflate":
		return true
	}
	return false
}

func newInflater(coding string, sink func([]byte)) *inflater {
	f := &inflater{
		feed: iolib.NewFeedReader(),
		sink: sink,
		done: make(chan struct{}),
	}
	go f.run(coding)
	return f
}

func (f *inflater) run(coding string) {
	defer close(f.done)
	defer f.feed.Stop()

	r, err := openDecoder(coding, f.feed)
	if err != nil {
		f.err = err
		return
	}
	defer r.Close()
	f.opened = true

	buf := make([]byte, 32*1024)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			f.sink(buf[:n])
		}
		if err == io.EOF {
			return
		}
		if err != nil {
			f.err = err
			return
		}
	}
}

// write pushes chunk. It reports false once decoding failed. A stream
// that ended cleanly accepts and drops whatever follows it.
func (f *inflater) write(chunk []byte) bool {
	if f.feed.Feed(chunk) {
		return true
	}
	<-f.done
	return f.opened && f.err == nil
}

// close ends the input and waits for the remaining output.
func (f *inflater) close() {
	_ = f.feed.Close()
	<-f.done
}

// truncated reports whether decoding stopped only because input ran out.
func (f *inflater) truncated() bool {
	return errors.Is(f.err, io.EOF) || errors.Is(f.err, io.ErrUnexpectedEOF)
}

func openDecoder(coding string, src io.Reader) (io.ReadCloser, error) {
	switch coding {
	case "gzip", "x-gzip":
		zr, err := gzip.NewReader(src)
		if err != nil {
			return nil, err
		}
		// Bytes after the first member are not part of the payload.
		zr.Multistream(false)
		return zr, nil

	case "deflate":
		// Servers send both zlib wrapped and raw deflate streams.
		br := bufio.NewReader(src)
		head, err := br.Peek(2)
		if err != nil {
			return nil, err
		}
		if isZlibHeader(head) {
			return zlib.NewReader(br)
		}
		return flate.NewReader(br), nil
	}

	return nil, errors.Errorf("unsupported content coding %q", coding)
}

// Reference: https://datatracker.ietf.org/doc/html/rfc1950#section-2.2
func isZlibHeader(b []byte) bool {
	return b[0]&0x0f == 8 && (uint16(b[0])<<8|uint16(b[1]))%31 == 0
}
