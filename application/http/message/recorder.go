package message

import (
	"bytes"
	"crypto/md5"
	"hash"
	"strconv"

	"http-inspector/application/http"
	"http-inspector/application/http/header"
	"http-inspector/application/http/links"
	"http-inspector/application/http/note"
	"http-inspector/application/http/semantic"
	"http-inspector/application/http/transfer"
	"http-inspector/application/util/rule"
	"http-inspector/application/util/uri"
	"http-inspector/lib/ds/queue"
	iolib "http-inspector/lib/io"

	"github.com/benbjohnson/clock"
	"golang.org/x/text/encoding/charmap"
)

// Recorder builds a Response from the events of one exchange.
// It runs the header pipeline once the head is complete and keeps
// body accounting as payload arrives. It implements fetch.Handler.
type Recorder struct {
	pipeline     *header.Pipeline
	notes        *note.Collector
	clock        clock.Clock
	extractLinks bool

	resp *Response

	payloadMD5 hash.Hash
	samples    *queue.Circular[Sample]
	partial    *iolib.CappedBuffer

	decodedMD5    hash.Hash
	decodedSample *iolib.CappedBuffer
	decoding      bool
	coding        string
	inflater      *inflater

	extractor *links.Extractor
	links     []links.Link

	done chan struct{}
}

// NewRecorder records the response to request. Notes about the response
// go to notes. Links are extracted from HTML payloads when extractLinks
// is set.
func NewRecorder(
	request *semantic.Request,
	pipeline *header.Pipeline,
	notes *note.Collector,
	clock clock.Clock,
	extractLinks bool,
) *Recorder {
	method := request.Method
	if method == "" {
		method = semantic.MethodGet
	}

	return &Recorder{
		pipeline:     pipeline,
		notes:        notes,
		clock:        clock,
		extractLinks: extractLinks,
		resp: &Response{
			Method:  method,
			URI:     request.URI,
			Started: clock.Now(),
		},
		payloadMD5:    md5.New(),
		samples:       queue.NewCircular[Sample](SampleChunks),
		decodedMD5:    md5.New(),
		decodedSample: iolib.NewCappedBuffer(DecodedSampleSize),
		links:         make([]links.Link, 0),
		done:          make(chan struct{}),
	}
}

func (r *Recorder) OnStatus(line http.StatusLine) {
	r.resp.Version = line.Version.String()
	r.resp.StatusCode = line.StatusCode

	if rule.IsASCII(line.ReasonPhrase) {
		r.resp.Reason = string(line.ReasonPhrase)
		return
	}

	r.notes.Add("status", StatusPhraseEncoding)
	// Every byte is a valid ISO-8859-1 character.
	reason, _ := charmap.ISO8859_1.NewDecoder().Bytes(line.ReasonPhrase)
	r.resp.Reason = string(reason)
}

func (r *Recorder) OnHeaders(head http.Head, framing transfer.Framing) {
	ctx := header.ResponseContext(head.StatusLine)
	ctx.Method = string(r.resp.Method)

	result := r.pipeline.Process(ctx, head.Fields, r.notes)
	r.resp.Headers = result.Clean
	r.resp.Parsed = result.Parsed
	r.resp.Framing = framing

	if r.resp.StatusCode == 206 {
		r.partial = iolib.NewCappedBuffer(MaxPartialPayload)
	}

	r.startDecoding()
	r.startExtracting()
}

func (r *Recorder) startDecoding() {
	codings := make([]string, 0)
	for _, c := range r.resp.ContentCodings() {
		if c != "identity" {
			codings = append(codings, c)
		}
	}

	switch {
	case len(codings) == 0:
		r.decoding = true
	case len(codings) == 1 && decodable(codings[0]):
		r.decoding = true
		r.coding = codings[0]
	}
	r.resp.Decoded = r.decoding
}

func (r *Recorder) startExtracting() {
	if !r.extractLinks || !r.resp.CarriesPayload() || !r.decoding {
		return
	}

	mediaType, ok := header.Get[header.MediaType](r.resp.Parsed, "content-type")
	if !ok || !links.Parseable(mediaType.Type) {
		return
	}

	base, err := uri.Parse(r.resp.URI)
	if err != nil {
		return
	}
	if r.extractor, err = links.NewExtractor(base); err != nil {
		r.extractor = nil
	}
}

func (r *Recorder) OnBody(chunk []byte) {
	offset := r.resp.PayloadLength

	r.samples.Push(Sample{Offset: offset, Data: bytes.Clone(chunk)})
	r.payloadMD5.Write(chunk)
	r.resp.PayloadLength += uint64(len(chunk))
	if r.partial != nil {
		r.partial.Write(chunk)
	}

	if !r.decoding {
		return
	}

	if r.coding == "" {
		r.sink(chunk)
		return
	}

	if r.inflater == nil {
		r.inflater = newInflater(r.coding, r.sink)
	}
	if !r.inflater.write(chunk) {
		r.inflateFailed(offset, chunk)
	}
}

// sink receives decoded payload.
func (r *Recorder) sink(decoded []byte) {
	r.decodedMD5.Write(decoded)
	r.decodedSample.Write(decoded)
	if r.extractor != nil {
		r.extractor.Write(decoded)
	}
}

func (r *Recorder) inflateFailed(offset uint64, chunk []byte) {
	r.decoding = false
	r.resp.Decoded = false

	subject := "header-content-encoding"
	if !r.inflater.opened && r.coding != "deflate" {
		r.notes.Add(subject, BadGzip, note.V("gzip_error", r.inflater.err))
		return
	}
	r.notes.Add(subject, BadZlib,
		note.V("zlib_error", r.inflater.err),
		note.V("ok_zlib_len", offset),
		note.V("chunk_sample", DisplayBytes(chunk)),
	)
}

func (r *Recorder) OnDone(err *transfer.Error) {
	defer close(r.done)

	if r.inflater != nil && r.decoding {
		r.inflater.close()
		// A stream that just ended early keeps what was decoded.
		if r.inflater.err != nil && !r.inflater.truncated() {
			r.inflateFailed(r.resp.PayloadLength, nil)
		}
	}

	if r.extractor != nil {
		_ = r.extractor.Close()
		r.links = r.extractor.Links()
	}

	resp := r.resp
	resp.PayloadMD5 = r.payloadMD5.Sum(nil)
	resp.PayloadSample = r.samples.Items()
	if r.partial != nil {
		resp.Payload = r.partial.Bytes()
	}

	resp.DecodedLength = r.decodedSample.Total()
	resp.DecodedMD5 = r.decodedMD5.Sum(nil)
	resp.DecodedSample = r.decodedSample.Bytes()
	resp.DecodedSampleComplete = r.decoding && r.decodedSample.Complete() &&
		!(r.inflater != nil && r.inflater.truncated())

	resp.Complete = err == nil
	resp.Error = err
	resp.Finished = r.clock.Now()
}

// Done is closed once the exchange ended.
func (r *Recorder) Done() <-chan struct{} { return r.done }

// Response returns the record. It is complete once Done is closed.
func (r *Recorder) Response() *Response { return r.resp }

// Links returns the links found in the payload. It must be called after Done.
func (r *Recorder) Links() []links.Link { return r.links }

// DisplayBytes quotes the start of b for use in a note.
func DisplayBytes(b []byte) string {
	const limit = 40
	if len(b) > limit {
		return strconv.Quote(string(b[:limit])) + "..."
	}
	return strconv.Quote(string(b))
}
