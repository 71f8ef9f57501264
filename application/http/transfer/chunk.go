package transfer

import (
	"bytes"
	"io"
	"math/big"
	"strconv"

	"http-inspector/application/http"
	"http-inspector/application/util/rule"

	"github.com/pkg/errors"
)

type chunkState uint8

const (
	csSize chunkState = iota
	csData
	csDataCR
	csDataLF
	csTrailer
	csDone
)

// maxChunkLine bounds a buffered chunk-size or trailer line.
const maxChunkLine = 4096

var (
	ErrMalformedChunkSize = errors.New("malformed chunk size")
	ErrMissingChunkCRLF   = errors.New("CRLF delimiter not found after chunk data")
	ErrChunkLineTooLong   = errors.New("chunk line length exceeds limit")
)

// chunkedDecoder is a push decoder for the chunked transfer coding.
// Size and trailer lines split across reads are buffered.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc9112#section-7.1
type chunkedDecoder struct {
	state     chunkState
	line      []byte
	remaining uint64
}

func newChunkedDecoder() *chunkedDecoder {
	return &chunkedDecoder{state: csSize, line: make([]byte, 0, 16)}
}

func (d *chunkedDecoder) Feed(data []byte) (body, rest []byte, err error) {
	if d.state == csDone {
		panic("feeding a finished chunked body")
	}

	for len(data) > 0 && d.state != csDone {
		switch d.state {
		case csSize, csTrailer:
			line, ok, remain, err := d.readLine(data)
			if err != nil {
				return body, nil, err
			}
			data = remain
			if !ok {
				return body, nil, nil
			}

			if err := d.handleLine(line); err != nil {
				return body, nil, err
			}

		case csData:
			n := uint64(len(data))
			if n > d.remaining {
				n = d.remaining
			}

			body = append(body, data[:n]...)
			data = data[n:]
			d.remaining -= n

			if d.remaining == 0 {
				d.state = csDataCR
			}

		case csDataCR:
			switch data[0] {
			case rule.CR:
				d.state = csDataLF
			case rule.LF:
				d.state = csSize
			default:
				return body, nil, ErrMissingChunkCRLF
			}
			data = data[1:]

		case csDataLF:
			if data[0] != rule.LF {
				return body, nil, ErrMissingChunkCRLF
			}
			d.state = csSize
			data = data[1:]
		}
	}

	return body, data, nil
}

// readLine accumulates bytes up to LF.
// ok is false when more data is needed to complete the line.
func (d *chunkedDecoder) readLine(data []byte) (line []byte, ok bool, rest []byte, err error) {
	lf := bytes.IndexByte(data, rule.LF)
	if lf == -1 {
		d.line = append(d.line, data...)
		if len(d.line) > maxChunkLine {
			return nil, false, nil, ErrChunkLineTooLong
		}
		return nil, false, nil, nil
	}

	d.line = append(d.line, data[:lf]...)
	if len(d.line) > maxChunkLine {
		return nil, false, nil, ErrChunkLineTooLong
	}

	line = bytes.TrimSuffix(d.line, []byte{rule.CR})
	d.line = d.line[:0]

	return line, true, data[lf+1:], nil
}

func (d *chunkedDecoder) handleLine(line []byte) error {
	if d.state == csTrailer {
		// Trailer fields are consumed and discarded.
		if len(line) == 0 {
			d.state = csDone
		}
		return nil
	}

	// Chunk extensions are ignored.
	sizeRaw, _, _ := bytes.Cut(line, []byte{';'})
	sizeRaw = bytes.TrimFunc(sizeRaw, rule.IsWhitespace)

	size, err := decodeChunkSize(sizeRaw)
	if err != nil {
		return errors.Wrap(err, "decoding chunk size")
	}

	if size == 0 {
		d.state = csTrailer
		return nil
	}

	d.remaining = size
	d.state = csData
	return nil
}

func (d *chunkedDecoder) Done() bool { return d.state == csDone }

func (d *chunkedDecoder) EOF() error {
	if d.state != csDone {
		return errors.Wrap(ErrBodyTruncated, "inside chunked body")
	}
	return nil
}

func decodeChunkSize(b []byte) (uint64, error) {
	if len(b) == 0 {
		return 0, errors.Wrap(ErrMalformedChunkSize, "empty")
	}
	for _, c := range b {
		if !rule.IsHexDigit(rune(c)) {
			return 0, errors.Wrapf(ErrMalformedChunkSize, "%q", string(b))
		}
	}

	n, ok := new(big.Int).SetString(string(b), 16)
	if !ok {
		return 0, errors.Wrapf(ErrMalformedChunkSize, "failed to deocode hex: %q", string(b))
	}

	if n.BitLen() > 64 {
		return 0, errors.Wrapf(ErrMalformedChunkSize, "chunk size larger than 64bit: %dbits", n.BitLen())
	}

	return n.Uint64(), nil
}

// ChunkedWriter encodes each Write as one chunk.
// Close writes the last chunk and the trailer section.
type ChunkedWriter struct {
	w          io.Writer
	extensions [][2]string
	trailers   []http.Field
}

var _ io.WriteCloser = (*ChunkedWriter)(nil)

func NewChunkedWriter(w io.Writer, trailers []http.Field) *ChunkedWriter {
	return &ChunkedWriter{w: w, trailers: trailers}
}

// SetExtensions sets extension to the next chunk.
func (cw *ChunkedWriter) SetExtensions(extensions [][2]string) {
	cw.extensions = extensions
}

func (cw *ChunkedWriter) Write(p []byte) (n int, err error) {
	if len(p) == 0 {
		// A zero-size chunk would end the body.
		return 0, nil
	}

	if err := cw.writeChunkHeader(uint64(len(p))); err != nil {
		return 0, err
	}

	if _, err := cw.w.Write(append(bytes.Clone(p), rule.CRLF...)); err != nil {
		return 0, errors.Wrap(err, "writing chunk data")
	}

	return len(p), nil
}

func (cw *ChunkedWriter) Close() error {
	if err := cw.writeChunkHeader(0); err != nil {
		return err
	}

	buf := bytes.NewBuffer(nil)
	for _, field := range cw.trailers {
		buf.Write(field.Text())
		buf.Write(rule.CRLF)
	}
	buf.Write(rule.CRLF)

	if _, err := cw.w.Write(buf.Bytes()); err != nil {
		return errors.Wrap(err, "writing trailers")
	}

	return nil
}

func (cw *ChunkedWriter) writeChunkHeader(size uint64) error {
	buf := bytes.NewBuffer(nil)
	buf.WriteString(strconv.FormatUint(size, 16))
	for _, ext := range cw.extensions {
		buf.WriteByte(';')
		buf.WriteString(ext[0])
		buf.WriteByte('=')
		buf.WriteString(ext[1])
	}
	buf.Write(rule.CRLF)
	cw.extensions = nil

	if _, err := cw.w.Write(buf.Bytes()); err != nil {
		return errors.Wrap(err, "writing chunk header")
	}

	return nil
}
