package http

import (
	"bytes"

	"http-inspector/application/util/rule"

	"github.com/indigo-web/utils/buffer"
	"github.com/pkg/errors"
)

// Head is a parsed status line and its header block.
type Head struct {
	StatusLine
	Fields []Field
}

type parserState uint8

const (
	eStatusLine parserState = iota
	eFieldLine
	eDone
)

const (
	lineBufferSize = 512
	// MaxLineLength bounds a single buffered line. Exceeding it is a framing error,
	// unlike the advisory header size limits.
	MaxLineLength = 64 * 1024
)

var (
	ErrLineTooLong        = errors.New("line length exceeds limit")
	ErrMalformedFieldLine = errors.New("field line is malformed")
	ErrParserDone         = errors.New("head is already parsed")
)

// ResponseParser parses a response head from arbitrarily fragmented input.
// Partial lines are kept between calls to [ResponseParser.Feed].
type ResponseParser struct {
	state   parserState
	line    *buffer.Buffer[byte]
	head    Head
	started bool
}

func NewResponseParser() *ResponseParser {
	return &ResponseParser{
		state: eStatusLine,
		line:  buffer.NewBuffer[byte](lineBufferSize, MaxLineLength),
	}
}

// Feed consumes data until the head is complete.
// When done is true, rest holds the bytes following the head.
func (p *ResponseParser) Feed(data []byte) (done bool, rest []byte, err error) {
	if p.state == eDone {
		return true, data, ErrParserDone
	}

	if len(data) > 0 {
		p.started = true
	}

	for len(data) > 0 {
		lf := bytes.IndexByte(data, rule.LF)
		if lf == -1 {
			if !p.line.Append(data...) {
				return false, nil, ErrLineTooLong
			}
			return false, nil, nil
		}

		if !p.line.Append(data[:lf]...) {
			return false, nil, ErrLineTooLong
		}
		data = data[lf+1:]

		// Sole LF is tolerated as a line terminator.
		// Reference: https://datatracker.ietf.org/doc/html/rfc9112#section-2.2-3
		line := bytes.Clone(bytes.TrimSuffix(p.line.Finish(), []byte{rule.CR}))
		p.line.Clear()

		if err := p.handleLine(line); err != nil {
			return false, nil, err
		}

		if p.state == eDone {
			return true, data, nil
		}
	}

	return false, nil, nil
}

func (p *ResponseParser) handleLine(line []byte) error {
	switch p.state {
	case eStatusLine:
		// An empty line can be received before message.
		// Reference: https://datatracker.ietf.org/doc/html/rfc9112#section-2.2-6
		if len(line) == 0 {
			return nil
		}

		statusLine, err := ParseStatusLine(line)
		if err != nil {
			return errors.Wrap(ErrMalformedStatusLine, err.Error())
		}

		p.head.StatusLine = statusLine
		p.state = eFieldLine

	case eFieldLine:
		if len(line) == 0 {
			// An empty line. This means that there are no more headers.
			p.state = eDone
			return nil
		}

		// obs-fold continues the previous field value.
		// Reference: https://datatracker.ietf.org/doc/html/rfc9112#section-5.2
		if rule.IsOWS(rune(line[0])) && len(p.head.Fields) > 0 {
			last := &p.head.Fields[len(p.head.Fields)-1]
			last.Value = append(last.Value, rule.SP)
			last.Value = append(last.Value, bytes.TrimFunc(line, rule.IsOWS)...)
			return nil
		}

		field, err := ParseField(line)
		if err != nil {
			return errors.Wrap(ErrMalformedFieldLine, err.Error())
		}

		p.head.Fields = append(p.head.Fields, field)
	}

	return nil
}

// Started reports whether any byte of a response has been seen.
func (p *ResponseParser) Started() bool { return p.started }

// StatusParsed reports whether the status line of the current response is parsed.
// Head then carries a valid StatusLine.
func (p *ResponseParser) StatusParsed() bool { return p.state != eStatusLine }

func (p *ResponseParser) Head() Head { return p.head }

// Reset prepares the parser for the next response on the same connection.
func (p *ResponseParser) Reset() {
	p.state = eStatusLine
	p.head = Head{}
	p.started = false
	p.line.Clear()
}
