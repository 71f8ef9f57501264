package analysis

import (
	"bytes"
	"slices"
	"strings"

	"http-inspector/application/http/header"
	"http-inspector/application/http/message"
	"http-inspector/application/http/note"
	"http-inspector/application/http/semantic"
)

// Fields that must not change between negotiated representations.
var invariantFields = []string{"content-type"}

// Conneg compares the primary response, fetched asking for gzip, with
// one fetched without Accept-Encoding.
type Conneg struct{}

func (Conneg) Name() string { return "conneg" }

func (Conneg) Preflight(base Base) bool {
	return base.AskedGzip && base.Response.StatusCode != 206
}

func (Conneg) Request(base Base) *semantic.Request {
	req := base.Request.Clone()
	req.DelHeader("Accept-Encoding")
	return req
}

func (Conneg) Evaluate(base Base, bare *message.Response, err error, notes *note.Collector) {
	if failed(bare, err, notes, ConnegSubreqProblem) {
		return
	}
	negotiated := base.Response

	if gzipped(bare) {
		notes.Add("header-vary header-content-encoding", ConnegGzipWithoutAsking)
	}
	if !gzipped(negotiated) {
		notes.Add("header-content-encoding", ConnegNoGzip)
		return
	}

	if bare.StatusCode != negotiated.StatusCode {
		notes.Add("status", VaryStatusMismatch,
			note.V("neg_status", negotiated.StatusCode),
			note.V("noneg_status", bare.StatusCode))
		return
	}

	for _, name := range invariantFields {
		if fieldValue(bare.Headers, name) != fieldValue(negotiated.Headers, name) {
			notes.Add("header-"+name, VaryHeaderMismatch, note.V("header", name))
		}
	}

	vary := negotiated.Parsed.Strings("vary")
	bareVary := bare.Parsed.Strings("vary")
	if !slices.Contains(vary, "accept-encoding") && !slices.Contains(vary, "*") {
		notes.Add("header-vary", ConnegNoVary)
	}
	if !slices.Equal(vary, bareVary) {
		noConneg := strings.Join(bareVary, ", ")
		if noConneg == "" {
			noConneg = "-"
		}
		notes.Add("header-vary", VaryInconsistent,
			note.V("conneg_vary", strings.Join(vary, ", ")),
			note.V("no_conneg_vary", noConneg))
	}

	bareETag, hasBare := header.Get[header.ETag](bare.Parsed, "etag")
	negETag, hasNeg := header.Get[header.ETag](negotiated.Parsed, "etag")
	if hasBare && hasNeg && bareETag == negETag && !bareETag.Weak {
		notes.Add("header-etag", VaryETagDoesntChange)
	}

	if !negotiated.Decoded {
		return
	}

	bareHash := bare.PayloadMD5
	if bare.Decoded {
		bareHash = bare.DecodedMD5
	}
	if !bytes.Equal(bareHash, negotiated.DecodedMD5) {
		notes.Add("body", VaryBodyMismatch)
	}

	orig, compressed := bare.PayloadLength, negotiated.PayloadLength
	savings := 0
	switch {
	case compressed > 0 && orig > 0:
		savings = int(100 * (float64(orig) - float64(compressed)) / float64(orig))
	case compressed > 0:
		return
	}

	vars := []note.Var{note.V("orig_size", orig), note.V("gzip_size", compressed)}
	if savings >= 0 {
		notes.Add("header-content-encoding", ConnegGzipGood, append(vars, note.V("savings", savings))...)
	} else {
		notes.Add("header-content-encoding", ConnegGzipBad, append(vars, note.V("savings", -savings))...)
	}
}

func gzipped(resp *message.Response) bool {
	codings := resp.ContentCodings()
	return slices.Contains(codings, "gzip") || slices.Contains(codings, "x-gzip")
}

// fieldValue joins the values of every name field.
func fieldValue(fields []header.Field, name string) string {
	values := make([]string, 0, 1)
	for _, f := range fields {
		if strings.EqualFold(f.Name, name) {
			values = append(values, f.Value)
		}
	}
	return strings.Join(values, ", ")
}
