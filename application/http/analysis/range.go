package analysis

import (
	"bytes"
	"fmt"
	"math/big"
	"slices"

	"http-inspector/application/http/header"
	"http-inspector/application/http/message"
	"http-inspector/application/http/note"
	"http-inspector/application/http/semantic"
)

// RangeSampleSize bounds the bytes the range probe asks for.
const RangeSampleSize = 96

// Fields a 206 must repeat when the full response has them.
var partialFields = []string{"date", "cache-control", "content-location", "etag", "expires", "vary"}

// Range asks for a slice of the payload already seen and compares.
type Range struct{}

type byteRange struct {
	first, last uint64
	want        []byte
}

func (r byteRange) String() string { return fmt.Sprintf("bytes=%d-%d", r.first, r.last) }

// target picks the range from the first sampled chunk, at most half
// of the payload so that a full response can be told apart.
func target(resp *message.Response) (byteRange, bool) {
	if len(resp.PayloadSample) == 0 {
		return byteRange{}, false
	}
	s := resp.PayloadSample[0]

	n := min(uint64(RangeSampleSize), uint64(len(s.Data)), resp.PayloadLength/2)
	if n == 0 {
		return byteRange{}, false
	}
	return byteRange{first: s.Offset, last: s.Offset + n - 1, want: s.Data[:n]}, true
}

func (Range) Name() string { return "range" }

func (Range) Preflight(base Base) bool {
	resp := base.Response
	if isRedirect(resp.StatusCode) || resp.StatusCode == 206 || !resp.CarriesPayload() {
		return false
	}
	if !slices.Contains(resp.Parsed.Strings("accept-ranges"), "bytes") {
		return false
	}
	_, ok := target(resp)
	return ok
}

func (Range) Request(base Base) *semantic.Request {
	req := base.Request.Clone()
	if r, ok := target(base.Response); ok {
		req.SetHeader("Range", r.String())
	}
	return req
}

func (Range) Evaluate(base Base, resp *message.Response, err error, notes *note.Collector) {
	if failed(resp, err, notes, RangeSubreqProblem) {
		return
	}
	primary := base.Response

	switch resp.StatusCode {
	case 206:
	case primary.StatusCode:
		notes.Add("header-accept-ranges", RangeFull)
		return
	default:
		notes.Add("header-accept-ranges", RangeStatus, note.V("range_status", resp.StatusCode))
		return
	}

	if gzipped(primary) != gzipped(resp) {
		notes.Add("header-accept-ranges header-content-encoding", RangeNegMismatch)
		return
	}

	checkMissingHeaders(primary, resp, partialFields, notes, MissingHdrs206)

	if cl, ok := header.Get[*big.Int](resp.Parsed, "content-length"); ok {
		if cl.Cmp(new(big.Int).SetUint64(primary.PayloadLength)) == 0 {
			notes.Add("header-content-length", RangeCLFull)
		}
	}

	if cr, ok := header.Get[header.ContentRange](resp.Parsed, "content-range"); ok {
		if cr.Complete >= 0 && uint64(cr.Complete) != primary.PayloadLength {
			notes.Add("header-content-range", RangeIncorrectLength)
		}
	}

	etag, hasETag := header.Get[header.ETag](primary.Parsed, "etag")
	probed, hasProbed := header.Get[header.ETag](resp.Parsed, "etag")
	if hasETag != hasProbed || etag != probed {
		notes.Add("header-accept-ranges", RangeChanged)
		return
	}

	r, _ := target(primary)
	if bytes.Equal(resp.Payload, r.want) {
		notes.Add("header-accept-ranges", RangeCorrect)
		return
	}
	notes.Add("header-accept-ranges", RangeIncorrect,
		note.V("range", r.String()),
		note.V("range_expected", message.DisplayBytes(r.want)),
		note.V("range_expected_bytes", len(r.want)),
		note.V("range_received", message.DisplayBytes(resp.Payload)),
		note.V("range_received_bytes", resp.PayloadLength),
	)
}
