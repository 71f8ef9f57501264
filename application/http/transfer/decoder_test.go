package transfer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type CountedDecoderTestSuite struct {
	suite.Suite
}

func TestCountedDecoderTestSuite(t *testing.T) {
	suite.Run(t, new(CountedDecoderTestSuite))
}

// feedSplit feeds input to d in pieces of the given sizes, cycling through them.
// It returns the body, the bytes after the body and how many times Done turned true.
func feedSplit(d Decoder, input []byte, sizes []int) (body, rest []byte, doneCount int, err error) {
	idx := 0
	for len(input) > 0 {
		n := sizes[idx%len(sizes)]
		idx++
		if n > len(input) {
			n = len(input)
		}

		piece := input[:n]
		input = input[n:]

		if d.Done() {
			rest = append(rest, piece...)
			continue
		}

		b, r, err := d.Feed(piece)
		if err != nil {
			return body, rest, doneCount, err
		}
		body = append(body, b...)
		rest = append(rest, r...)

		if d.Done() {
			doneCount++
		}
	}

	return body, rest, doneCount, nil
}

func (s *CountedDecoderTestSuite) TestSplits() {
	payload := []byte("The quick brown fox jumps over the lazy dog")
	next := []byte("HTTP/1.1 200 OK\r\n")

	testcases := []struct {
		desc  string
		sizes []int
	}{
		{desc: "all at once", sizes: []int{1 << 16}},
		{desc: "byte by byte", sizes: []int{1}},
		{desc: "uneven", sizes: []int{3, 7, 1, 13}},
		{desc: "boundary on body end", sizes: []int{len(payload), 5}},
		{desc: "straddling body end", sizes: []int{len(payload) - 2, 4}},
	}

	for _, tc := range testcases {
		s.Run(tc.desc, func() {
			d := NewDecoder(Framing{Mode: ModeCounted, Length: uint64(len(payload))})

			body, rest, doneCount, err := feedSplit(d, append(bytes.Clone(payload), next...), tc.sizes)
			s.Require().NoError(err)
			s.Equal(payload, body)
			s.Equal(next, rest)
			s.Equal(1, doneCount)
			s.NoError(d.EOF())
		})
	}
}

func (s *CountedDecoderTestSuite) TestZeroLength() {
	d := NewDecoder(Framing{Mode: ModeCounted})
	s.True(d.Done())

	body, rest, err := d.Feed([]byte("next"))
	s.NoError(err)
	s.Empty(body)
	s.Equal([]byte("next"), rest)
}

func (s *CountedDecoderTestSuite) TestTruncated() {
	d := NewDecoder(Framing{Mode: ModeCounted, Length: 10})

	body, _, err := d.Feed([]byte("hello"))
	s.Require().NoError(err)
	s.Equal([]byte("hello"), body)
	s.False(d.Done())

	s.ErrorIs(d.EOF(), ErrBodyTruncated)
}

func TestCloseDecoder(t *testing.T) {
	d := NewDecoder(Framing{Mode: ModeClose})

	body, rest, doneCount, err := feedSplit(d, []byte("anything goes\r\n0\r\n"), []int{4})
	assert.NoError(t, err)
	assert.Equal(t, "anything goes\r\n0\r\n", string(body))
	assert.Empty(t, rest)
	assert.Zero(t, doneCount)

	// Close is the normal terminator.
	assert.NoError(t, d.EOF())
}
