package iolib

import (
	"io"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/goleak"
)

type FeedReaderTestSuite struct {
	suite.Suite
}

func TestFeedReaderTestSuite(t *testing.T) {
	suite.Run(t, new(FeedReaderTestSuite))
}

func (s *FeedReaderTestSuite) TearDownTest() {
	goleak.VerifyNone(s.T())
}

func (s *FeedReaderTestSuite) TestFeedWaitsForConsumer() {
	r := NewFeedReader()

	var (
		got  []byte
		done = make(chan struct{})
	)
	go func() {
		defer close(done)
		buf := make([]byte, 3)
		for {
			n, err := r.Read(buf)
			got = append(got, buf[:n]...)
			if err != nil {
				return
			}
		}
	}()

	s.True(r.Feed([]byte("hello ")))
	// Consumed as soon as Feed returns.
	s.Equal("hello ", string(got))

	s.True(r.Feed(nil))
	s.True(r.Feed([]byte("world")))
	s.Equal("hello world", string(got))

	s.NoError(r.Close())
	<-done
}

func (s *FeedReaderTestSuite) TestStoppedConsumer() {
	r := NewFeedReader()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = r.Read(make([]byte, 2))
		r.Stop()
	}()

	s.False(r.Feed([]byte("abcdef")))
	<-done
	s.True(r.Stopped())
	s.False(r.Feed([]byte("more")))
}

func (s *FeedReaderTestSuite) TestConsumerDoneAfterLastChunk() {
	r := NewFeedReader()

	var (
		got  []byte
		done = make(chan struct{})
	)
	go func() {
		defer close(done)
		defer r.Stop()
		// Reads exactly five bytes and never asks for more.
		buf := make([]byte, 5)
		_, _ = io.ReadFull(r, buf)
		got = buf
	}()

	s.True(r.Feed([]byte("abc")))
	s.False(r.Feed([]byte("de")))
	<-done
	s.Equal("abcde", string(got))
}

func (s *FeedReaderTestSuite) TestEOF() {
	r := NewFeedReader()
	s.NoError(r.Close())
	s.NoError(r.Close())

	for range 2 {
		n, err := r.Read(make([]byte, 4))
		s.Zero(n)
		s.ErrorIs(err, io.EOF)
	}
}

type CappedBufferTestSuite struct {
	suite.Suite
}

func TestCappedBufferTestSuite(t *testing.T) {
	suite.Run(t, new(CappedBufferTestSuite))
}

func (s *CappedBufferTestSuite) TestWrite() {
	testcases := []struct {
		desc     string
		limit    int
		writes   []string
		kept     string
		total    uint64
		complete bool
	}{
		{desc: "under the limit", limit: 8, writes: []string{"abc", "de"}, kept: "abcde", total: 5, complete: true},
		{desc: "exactly the limit", limit: 5, writes: []string{"abc", "de"}, kept: "abcde", total: 5, complete: true},
		{desc: "split write", limit: 4, writes: []string{"abc", "def"}, kept: "abcd", total: 6},
		{desc: "past the limit", limit: 2, writes: []string{"ab", "cd", "ef"}, kept: "ab", total: 6},
		{desc: "nothing written", limit: 2, kept: "", total: 0, complete: true},
	}

	for _, tc := range testcases {
		s.Run(tc.desc, func() {
			b := NewCappedBuffer(tc.limit)
			for _, w := range tc.writes {
				n, err := b.Write([]byte(w))
				s.NoError(err)
				s.Equal(len(w), n)
			}
			s.Equal(tc.kept, string(b.Bytes()))
			s.Equal(tc.total, b.Total())
			s.Equal(tc.complete, b.Complete())
		})
	}
}
