package analysis

import (
	"encoding/base64"
	"math/big"

	"http-inspector/application/http/header"
	"http-inspector/application/http/message"
	"http-inspector/application/http/note"
	"http-inspector/application/http/semantic"
	"http-inspector/application/http/syntax"
)

// MaxURILength is the longest URI not reported as too long.
const MaxURILength = 8000

var uriSyntax = syntax.Compile(syntax.URI)

// CheckRequest checks the request URI.
func CheckRequest(request *semantic.Request, notes *note.Collector) {
	if len(request.URI) > MaxURILength {
		notes.Add("uri", URITooLong, note.V("uri_len", len(request.URI)))
	}
	if !uriSyntax.MatchString(request.URI) {
		notes.Add("uri", URIBadSyntax)
	}
}

// CheckBody compares the payload with Content-Length and Content-MD5.
// Incomplete responses and responses without payload are skipped.
func CheckBody(resp *message.Response, notes *note.Collector) {
	if !resp.Complete || !resp.CarriesPayload() {
		return
	}

	if cl, ok := header.Get[*big.Int](resp.Parsed, "content-length"); ok {
		if cl.Cmp(new(big.Int).SetUint64(resp.PayloadLength)) == 0 {
			notes.Add("header-content-length", CLCorrect)
		} else {
			notes.Add("header-content-length", CLIncorrect, note.V("body_length", resp.PayloadLength))
		}
	}

	if md5, ok := resp.Parsed.Text("content-md5"); ok {
		calculated := base64.StdEncoding.EncodeToString(resp.PayloadMD5)
		if md5 == calculated {
			notes.Add("header-content-md5", CMD5Correct)
		} else {
			notes.Add("header-content-md5", CMD5Incorrect, note.V("calc_md5", calculated))
		}
	}
}
