package http

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ResponseParserTestSuite struct {
	suite.Suite
}

func TestResponseParserTestSuite(t *testing.T) {
	suite.Run(t, new(ResponseParserTestSuite))
}

const exampleHead = "" +
	"HTTP/1.1 200 OK\r\n" +
	"Content-Type: text/plain\r\n" +
	"Content-Length: 5\r\n" +
	"\r\n"

func (s *ResponseParserTestSuite) TestFeedAtOnce() {
	p := NewResponseParser()

	done, rest, err := p.Feed([]byte(exampleHead + "hello"))
	s.Require().NoError(err)
	s.True(done)
	s.Equal("hello", string(rest))

	head := p.Head()
	s.Equal(Version11, head.Version)
	s.Equal(uint(200), head.StatusCode)
	s.Equal("OK", string(head.ReasonPhrase))
	s.Equal([]Field{
		NewField("Content-Type", "text/plain"),
		NewField("Content-Length", "5"),
	}, head.Fields)
}

func (s *ResponseParserTestSuite) TestFeedByteByByte() {
	input := exampleHead + "hello"

	p := NewResponseParser()
	var rest []byte
	done := false
	for idx := 0; idx < len(input) && !done; idx++ {
		var err error
		done, rest, err = p.Feed([]byte{input[idx]})
		s.Require().NoError(err)
		if done {
			rest = append(rest, input[idx+1:]...)
		}
	}

	s.True(done)
	s.Equal("hello", string(rest))
	s.Len(p.Head().Fields, 2)
}

func (s *ResponseParserTestSuite) TestFeed() {
	testcases := []struct {
		desc     string
		input    string
		expected Head
		wantErr  error
	}{
		{
			desc:  "leading empty lines and sole LF",
			input: "\r\n\nHTTP/1.0 404 Not Found\nServer: x\n\n",
			expected: Head{
				StatusLine: StatusLine{Version10, 404, []byte("Not Found")},
				Fields:     []Field{NewField("Server", "x")},
			},
		},
		{
			desc:  "obs-fold",
			input: "HTTP/1.1 200 OK\r\nX-Long: a\r\n  b\r\n\r\n",
			expected: Head{
				StatusLine: StatusLine{Version11, 200, []byte("OK")},
				Fields:     []Field{NewField("X-Long", "a b")},
			},
		},
		{
			desc:    "malformed status line",
			input:   "HTTP/1.1 OK\r\n\r\n",
			wantErr: ErrMalformedStatusLine,
		},
		{
			desc:    "colon-less header",
			input:   "HTTP/1.1 200 OK\r\nfoo bar\r\n\r\n",
			wantErr: ErrMalformedFieldLine,
		},
		{
			desc:    "line too long",
			input:   "HTTP/1.1 200 OK\r\nX: " + strings.Repeat("a", MaxLineLength+1),
			wantErr: ErrLineTooLong,
		},
	}

	for _, tc := range testcases {
		s.Run(tc.desc, func() {
			p := NewResponseParser()
			done, _, err := p.Feed([]byte(tc.input))
			if tc.wantErr != nil {
				s.ErrorIs(err, tc.wantErr)
				return
			}

			s.Require().NoError(err)
			s.True(done)
			s.Equal(tc.expected, p.Head())
		})
	}
}

func (s *ResponseParserTestSuite) TestReset() {
	p := NewResponseParser()
	s.False(p.Started())

	_, _, err := p.Feed([]byte("HTTP/1.1 100 Continue\r\n\r\n"))
	s.Require().NoError(err)
	s.True(p.Started())

	_, _, err = p.Feed([]byte("HTTP/1.1 200 OK\r\n\r\n"))
	s.ErrorIs(err, ErrParserDone)

	p.Reset()
	s.False(p.Started())

	done, _, err := p.Feed([]byte("HTTP/1.1 200 OK\r\n\r\n"))
	s.Require().NoError(err)
	s.True(done)
	s.Equal(uint(200), p.Head().StatusCode)
}

func (s *ResponseParserTestSuite) TestStatusParsed() {
	p := NewResponseParser()
	s.False(p.StatusParsed())

	done, _, err := p.Feed([]byte("\r\nHTTP/1.1 204 No"))
	s.Require().NoError(err)
	s.False(done)
	s.False(p.StatusParsed())

	_, _, err = p.Feed([]byte(" Content\r\nServer: x"))
	s.Require().NoError(err)
	s.True(p.StatusParsed())
	s.Equal(uint(204), p.Head().StatusCode)

	p.Reset()
	s.False(p.StatusParsed())
}
