// Package message records a response as its events arrive.
package message

import (
	"time"

	"http-inspector/application/http/header"
	"http-inspector/application/http/semantic"
	"http-inspector/application/http/transfer"
)

const (
	// SampleChunks is how many trailing payload chunks are kept.
	SampleChunks = 4
	// DecodedSampleSize bounds the decoded payload kept for inspection.
	DecodedSampleSize = 24 * 1024
	// MaxPartialPayload bounds the payload kept for 206 responses.
	MaxPartialPayload = 1 << 20
)

// Sample is a payload chunk and the payload offset it started at.
type Sample struct {
	Offset uint64 `json:"offset"`
	Data   []byte `json:"data"`
}

// Response is what was learned about one response.
// It is frozen once the recorder saw the end of the exchange.
type Response struct {
	Method semantic.Method `json:"method"`
	URI    string          `json:"uri"`

	Version    string           `json:"version"`
	StatusCode uint             `json:"status_code"`
	Reason     string           `json:"reason"`
	Headers    []header.Field   `json:"headers"`
	Parsed     header.Parsed    `json:"-"`
	Framing    transfer.Framing `json:"-"`

	// The payload is the body after transfer decoding.
	PayloadLength uint64   `json:"payload_length"`
	PayloadMD5    []byte   `json:"payload_md5,omitempty"`
	PayloadSample []Sample `json:"-"`
	// Payload is only kept for 206 responses.
	Payload []byte `json:"-"`

	// Decoded is false when the content codings could not be undone.
	Decoded               bool   `json:"decoded"`
	DecodedLength         uint64 `json:"decoded_length"`
	DecodedMD5            []byte `json:"decoded_md5,omitempty"`
	DecodedSample         []byte `json:"-"`
	DecodedSampleComplete bool   `json:"decoded_sample_complete"`

	Complete bool            `json:"complete"`
	Error    *transfer.Error `json:"error,omitempty"`

	Started  time.Time `json:"started"`
	Finished time.Time `json:"finished"`
}

// HasStatus reports whether a status line was received.
func (r *Response) HasStatus() bool { return r.StatusCode != 0 }

// CarriesPayload reports whether the message could have a payload at all.
func (r *Response) CarriesPayload() bool {
	if r.Method == semantic.MethodHead {
		return false
	}
	switch {
	case r.StatusCode < 200, r.StatusCode == 204, r.StatusCode == 304:
		return false
	}
	return true
}

// ContentCodings returns the Content-Encoding codings in order.
func (r *Response) ContentCodings() []string { return r.Parsed.Strings("content-encoding") }
