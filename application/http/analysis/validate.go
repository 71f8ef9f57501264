package analysis

import (
	"bytes"

	"http-inspector/application/http/header"
	"http-inspector/application/http/message"
	"http-inspector/application/http/note"
	"http-inspector/application/http/semantic"
)

// Fields a 304 must repeat when the full response has them.
var notModifiedFields = []string{"cache-control", "content-location", "etag", "expires", "vary"}

// ETagValidate revalidates the response with If-None-Match.
type ETagValidate struct{}

func (ETagValidate) Name() string { return "etag-validate" }

func (ETagValidate) Preflight(base Base) bool {
	if isRedirect(base.Response.StatusCode) {
		return false
	}
	_, ok := header.Get[header.ETag](base.Response.Parsed, "etag")
	return ok
}

func (ETagValidate) Request(base Base) *semantic.Request {
	req := base.Request.Clone()
	etag, _ := header.Get[header.ETag](base.Response.Parsed, "etag")
	req.SetHeader("If-None-Match", formatETag(etag))
	return req
}

func (ETagValidate) Evaluate(base Base, resp *message.Response, err error, notes *note.Collector) {
	if failed(resp, err, notes, ETagSubreqProblem) {
		return
	}

	primary := base.Response
	switch resp.StatusCode {
	case 304:
		notes.Add("header-etag", INM304)
		checkMissingHeaders(primary, resp, notModifiedFields, notes, MissingHdrs304)
		return
	case primary.StatusCode:
	default:
		notes.Add("header-etag", INMStatus, note.V("inm_status", resp.StatusCode))
		return
	}

	if bytes.Equal(resp.PayloadMD5, primary.PayloadMD5) {
		notes.Add("header-etag", INMFull)
		return
	}

	etag, _ := header.Get[header.ETag](primary.Parsed, "etag")
	probed, ok := header.Get[header.ETag](resp.Parsed, "etag")
	switch {
	case !ok || probed != etag:
		notes.Add("header-etag", INMUnknown)
	case etag.Weak:
		notes.Add("header-etag", INMDupETagWeak)
	default:
		notes.Add("header-etag", INMDupETagStrong, note.V("etag", formatETag(etag)))
	}
}

// LMValidate revalidates the response with If-Modified-Since.
type LMValidate struct{}

func (LMValidate) Name() string { return "lm-validate" }

func (LMValidate) Preflight(base Base) bool {
	if isRedirect(base.Response.StatusCode) {
		return false
	}
	_, ok := base.Response.Parsed.Date("last-modified")
	return ok
}

func (LMValidate) Request(base Base) *semantic.Request {
	req := base.Request.Clone()
	lm, _ := base.Response.Parsed.Date("last-modified")
	req.SetHeader("If-Modified-Since", semantic.FormatDate(lm))
	return req
}

func (LMValidate) Evaluate(base Base, resp *message.Response, err error, notes *note.Collector) {
	if failed(resp, err, notes, LMSubreqProblem) {
		return
	}

	primary := base.Response
	switch {
	case resp.StatusCode == 304:
		notes.Add("header-last-modified", IMS304)
		checkMissingHeaders(primary, resp, notModifiedFields, notes, MissingHdrs304)
	case resp.StatusCode != primary.StatusCode:
		notes.Add("header-last-modified", IMSStatus, note.V("ims_status", resp.StatusCode))
	case bytes.Equal(resp.PayloadMD5, primary.PayloadMD5):
		notes.Add("header-last-modified", IMSFull)
	default:
		notes.Add("header-last-modified", IMSUnknown)
	}
}

func formatETag(etag header.ETag) string {
	quoted := `"` + etag.Tag + `"`
	if etag.Weak {
		return "W/" + quoted
	}
	return quoted
}
