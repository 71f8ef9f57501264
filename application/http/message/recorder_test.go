package message

import (
	"bytes"
	"crypto/md5"
	"strings"
	"testing"
	"time"

	"http-inspector/application/http"
	"http-inspector/application/http/header"
	"http-inspector/application/http/note"
	"http-inspector/application/http/semantic"
	"http-inspector/application/http/transfer"

	"github.com/benbjohnson/clock"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/suite"
	"go.uber.org/goleak"
)

type RecorderTestSuite struct {
	suite.Suite

	clock *clock.Mock
	notes *note.Collector
}

func TestRecorderTestSuite(t *testing.T) {
	suite.Run(t, new(RecorderTestSuite))
}

func (s *RecorderTestSuite) SetupTest() {
	s.clock = clock.NewMock()
	s.notes = note.NewCollector()
}

func (s *RecorderTestSuite) TearDownTest() {
	goleak.VerifyNone(s.T())
}

func (s *RecorderTestSuite) newRecorder(method semantic.Method, extractLinks bool) *Recorder {
	request := &semantic.Request{Method: method, URI: "http://www.example.com/dir/page"}
	return NewRecorder(request, header.NewPipeline(header.DefaultRegistry()), s.notes, s.clock, extractLinks)
}

func head(code uint, reason string, kv ...string) http.Head {
	h := http.Head{StatusLine: http.StatusLine{Version: http.Version11, StatusCode: code, ReasonPhrase: []byte(reason)}}
	for idx := 0; idx+1 < len(kv); idx += 2 {
		h.Fields = append(h.Fields, http.NewField(kv[idx], kv[idx+1]))
	}
	return h
}

// replay delivers the events of a response in order.
func (s *RecorderTestSuite) replay(r *Recorder, h http.Head, chunks [][]byte, err *transfer.Error) *Response {
	r.OnStatus(h.StatusLine)
	r.OnHeaders(h, transfer.Framing{Mode: transfer.ModeClose})
	for _, c := range chunks {
		r.OnBody(c)
	}
	s.clock.Add(time.Second)
	r.OnDone(err)

	select {
	case <-r.Done():
	default:
		s.Fail("recorder is not done")
	}
	return r.Response()
}

func split(b []byte, size int) [][]byte {
	chunks := make([][]byte, 0)
	for len(b) > size {
		chunks = append(chunks, b[:size])
		b = b[size:]
	}
	return append(chunks, b)
}

func gzipped(b []byte) []byte {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, _ = w.Write(b)
	_ = w.Close()
	return buf.Bytes()
}

func (s *RecorderTestSuite) TestPlainPayload() {
	body := []byte(strings.Repeat("0123456789", 10))
	chunks := split(body, 15)

	resp := s.replay(s.newRecorder(semantic.MethodGet, false), head(200, "OK", "Content-Length", "100"), chunks, nil)

	s.Equal("HTTP/1.1", resp.Version)
	s.Equal(uint(200), resp.StatusCode)
	s.Equal("OK", resp.Reason)
	s.Equal([]header.Field{{Name: "Content-Length", Value: "100"}}, resp.Headers)

	sum := md5.Sum(body)
	s.Equal(uint64(100), resp.PayloadLength)
	s.Equal(sum[:], resp.PayloadMD5)
	s.Equal(body, resp.DecodedSample)
	s.Equal(sum[:], resp.DecodedMD5)
	s.True(resp.Decoded)
	s.True(resp.DecodedSampleComplete)
	s.True(resp.Complete)
	s.Nil(resp.Payload)
	s.Equal(time.Second, resp.Finished.Sub(resp.Started))

	// Only the last chunks are sampled.
	s.Require().Len(resp.PayloadSample, SampleChunks)
	s.Equal(Sample{Offset: 45, Data: body[45:60]}, resp.PayloadSample[0])
	s.Equal(Sample{Offset: 90, Data: body[90:]}, resp.PayloadSample[3])
	s.Zero(s.notes.Len())
}

func (s *RecorderTestSuite) TestContentCodings() {
	body := []byte(strings.Repeat("compressible text ", 200))

	var zbuf, fbuf bytes.Buffer
	zw := zlib.NewWriter(&zbuf)
	_, _ = zw.Write(body)
	_ = zw.Close()
	fw, _ := flate.NewWriter(&fbuf, flate.BestCompression)
	_, _ = fw.Write(body)
	_ = fw.Close()

	testcases := []struct {
		desc    string
		coding  string
		payload []byte
	}{
		{desc: "gzip", coding: "gzip", payload: gzipped(body)},
		{desc: "x-gzip", coding: "x-gzip", payload: gzipped(body)},
		{desc: "zlib deflate", coding: "deflate", payload: zbuf.Bytes()},
		{desc: "raw deflate", coding: "deflate", payload: fbuf.Bytes()},
		{desc: "identity listed", coding: "identity, gzip", payload: gzipped(body)},
	}

	for _, tc := range testcases {
		s.Run(tc.desc, func() {
			s.notes = note.NewCollector()
			r := s.newRecorder(semantic.MethodGet, false)
			resp := s.replay(r, head(200, "OK", "Content-Encoding", tc.coding), split(tc.payload, 7), nil)

			sum := md5.Sum(body)
			s.True(resp.Decoded)
			s.Equal(body, resp.DecodedSample)
			s.Equal(uint64(len(body)), resp.DecodedLength)
			s.Equal(sum[:], resp.DecodedMD5)
			s.True(resp.DecodedSampleComplete)
			s.Equal(uint64(len(tc.payload)), resp.PayloadLength)
			s.False(s.notes.Has(BadGzip.ID))
			s.False(s.notes.Has(BadZlib.ID))
		})
	}
}

func (s *RecorderTestSuite) TestGzipChunkings() {
	text := strings.Repeat("a gzip payload split over reads; ", 4000)

	testcases := []struct {
		desc     string
		length   int
		chunks   int
		trailing string
	}{
		{desc: "tiny body in one chunk", length: 5, chunks: 1},
		{desc: "tiny body byte by byte", length: 5, chunks: 5},
		{desc: "medium body", length: 1000, chunks: 22},
		{desc: "large body", length: 100000, chunks: 34},
		{desc: "bytes after the stream", length: 1000, chunks: 3, trailing: "junk"},
	}

	for _, tc := range testcases {
		s.Run(tc.desc, func() {
			s.notes = note.NewCollector()
			body := []byte(text[:tc.length])
			payload := append(gzipped(body), tc.trailing...)
			size := (len(payload) + tc.chunks - 1) / tc.chunks

			r := s.newRecorder(semantic.MethodGet, false)
			resp := s.replay(r, head(200, "OK", "Content-Encoding", "gzip"), split(payload, size), nil)

			sum := md5.Sum(body)
			s.True(resp.Decoded)
			s.Equal(uint64(tc.length), resp.DecodedLength)
			s.Equal(sum[:], resp.DecodedMD5)
			s.Equal(uint64(len(payload)), resp.PayloadLength)
			s.False(s.notes.Has(BadGzip.ID))
			s.False(s.notes.Has(BadZlib.ID))
		})
	}
}

func (s *RecorderTestSuite) TestBadGzipHeader() {
	r := s.newRecorder(semantic.MethodGet, false)
	resp := s.replay(r, head(200, "OK", "Content-Encoding", "gzip"), [][]byte{[]byte("this is not gzip at all")}, nil)

	s.False(resp.Decoded)
	s.Zero(resp.DecodedLength)
	found := s.notes.Find(BadGzip.ID)
	s.Require().Len(found, 1)
	s.Equal("header-content-encoding", found[0].Subject)
}

func (s *RecorderTestSuite) TestCorruptStream() {
	payload := gzipped([]byte("hello"))
	corrupt := append(bytes.Clone(payload[:10]), 0xff, 0xff, 0xff, 0xff)

	r := s.newRecorder(semantic.MethodGet, false)
	resp := s.replay(r, head(200, "OK", "Content-Encoding", "gzip"),
		[][]byte{corrupt[:10], corrupt[10:], []byte("ignored")}, nil)

	s.False(resp.Decoded)
	s.False(resp.DecodedSampleComplete)
	s.Equal(uint64(len(corrupt)+len("ignored")), resp.PayloadLength)

	found := s.notes.Find(BadZlib.ID)
	s.Require().Len(found, 1)
	s.Equal("10", found[0].Vars["ok_zlib_len"])
	s.Equal(`"\xff\xff\xff\xff"`, found[0].Vars["chunk_sample"])
}

func (s *RecorderTestSuite) TestTruncatedStream() {
	body := []byte(strings.Repeat("abcdefgh", 1000))
	payload := gzipped(body)

	r := s.newRecorder(semantic.MethodGet, false)
	resp := s.replay(r, head(200, "OK", "Content-Encoding", "gzip"),
		[][]byte{payload[:len(payload)/2]}, transfer.NewTruncatedError(transfer.ErrBodyTruncated))

	s.False(resp.Complete)
	s.Equal(transfer.KindTruncated, resp.Error.Kind)
	s.False(resp.DecodedSampleComplete)
	s.False(s.notes.Has(BadZlib.ID))
	s.True(bytes.HasPrefix(body, resp.DecodedSample))
}

func (s *RecorderTestSuite) TestUnknownCoding() {
	r := s.newRecorder(semantic.MethodGet, false)
	resp := s.replay(r, head(200, "OK", "Content-Encoding", "br"), [][]byte{[]byte("\x8b\x02\x80hello\x03")}, nil)

	s.False(resp.Decoded)
	s.Zero(resp.DecodedLength)
	s.Equal(uint64(9), resp.PayloadLength)
	s.False(s.notes.Has(BadGzip.ID))
}

func (s *RecorderTestSuite) TestDecodedSampleIsBounded() {
	body := bytes.Repeat([]byte{'x'}, DecodedSampleSize+100)

	resp := s.replay(s.newRecorder(semantic.MethodGet, false), head(200, "OK"), split(body, 4096), nil)

	s.Len(resp.DecodedSample, DecodedSampleSize)
	s.Equal(uint64(len(body)), resp.DecodedLength)
	s.False(resp.DecodedSampleComplete)
}

func (s *RecorderTestSuite) TestStatusPhraseEncoding() {
	resp := s.replay(s.newRecorder(semantic.MethodGet, false), head(200, "Caf\xe9"), nil, nil)

	s.Equal("Café", resp.Reason)
	s.True(s.notes.Has(StatusPhraseEncoding.ID))
}

func (s *RecorderTestSuite) TestPartialPayload() {
	resp := s.replay(s.newRecorder(semantic.MethodGet, false),
		head(206, "Partial Content", "Content-Range", "bytes 0-4/10"),
		[][]byte{[]byte("he"), []byte("llo")}, nil)

	s.Equal([]byte("hello"), resp.Payload)
	cr, ok := header.Get[header.ContentRange](resp.Parsed, "content-range")
	s.Require().True(ok)
	s.Equal(int64(5), cr.Length())
}

func (s *RecorderTestSuite) TestLinks() {
	doc := []byte(`<html><body><a href="other">x</a><img src="/logo.png"></body></html>`)

	testcases := []struct {
		desc        string
		method      semantic.Method
		contentType string
		payload     []byte
		coding      string
		extract     bool
		expected    []string
	}{
		{
			desc:        "html",
			method:      semantic.MethodGet,
			contentType: "text/html; charset=utf-8",
			payload:     doc,
			extract:     true,
			expected:    []string{"http://www.example.com/dir/other", "http://www.example.com/logo.png"},
		},
		{
			desc:        "gzipped html",
			method:      semantic.MethodGet,
			contentType: "text/html",
			payload:     gzipped(doc),
			coding:      "gzip",
			extract:     true,
			expected:    []string{"http://www.example.com/dir/other", "http://www.example.com/logo.png"},
		},
		{desc: "not html", method: semantic.MethodGet, contentType: "text/plain", payload: doc, extract: true},
		{desc: "disabled", method: semantic.MethodGet, contentType: "text/html", payload: doc},
	}

	for _, tc := range testcases {
		s.Run(tc.desc, func() {
			kv := []string{"Content-Type", tc.contentType}
			if tc.coding != "" {
				kv = append(kv, "Content-Encoding", tc.coding)
			}

			r := s.newRecorder(tc.method, tc.extract)
			s.replay(r, head(200, "OK", kv...), split(tc.payload, 10), nil)

			targets := make([]string, 0)
			for _, l := range r.Links() {
				targets = append(targets, l.Target)
			}
			if tc.expected == nil {
				s.Empty(targets)
				return
			}
			s.Equal(tc.expected, targets)
		})
	}
}

func (s *RecorderTestSuite) TestCarriesPayload() {
	testcases := []struct {
		desc     string
		method   semantic.Method
		code     uint
		expected bool
	}{
		{desc: "get 200", method: semantic.MethodGet, code: 200, expected: true},
		{desc: "head 200", method: semantic.MethodHead, code: 200},
		{desc: "no content", method: semantic.MethodGet, code: 204},
		{desc: "not modified", method: semantic.MethodGet, code: 304},
		{desc: "not found", method: semantic.MethodPost, code: 404, expected: true},
	}

	for _, tc := range testcases {
		s.Run(tc.desc, func() {
			r := &Response{Method: tc.method, StatusCode: tc.code}
			s.Equal(tc.expected, r.CarriesPayload())
		})
	}
}
