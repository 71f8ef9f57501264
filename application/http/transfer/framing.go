package transfer

import (
	"strconv"
	"strings"

	"http-inspector/application/http"
	"http-inspector/application/util/rule"

	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
	"github.com/pkg/errors"
)

// Mode is the strategy used to find the end of a response body.
type Mode uint8

const (
	// ModeClose reads the body until the connection closes.
	ModeClose Mode = iota
	// ModeCounted reads exactly Framing.Length bytes.
	ModeCounted
	// ModeChunked decodes self-delimited chunks.
	ModeChunked
)

func (m Mode) String() string {
	switch m {
	case ModeClose:
		return "close"
	case ModeCounted:
		return "counted"
	case ModeChunked:
		return "chunked"
	}
	return "unknown"
}

const CodingChunked = "chunked"

// Framing is the body framing decision for one response.
type Framing struct {
	Mode   Mode
	Length uint64

	// Reusable tells whether the connection may serve another exchange
	// after this response is complete.
	Reusable bool
}

var (
	ErrInvalidContentLength     = errors.New("invalid content-length")
	ErrConflictingContentLength = errors.New("conflicting content-length values")
)

// Decide chooses the body framing once the response head is complete.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc9112#section-6.3
func Decide(method string, status uint, version http.Version, fields []http.Field) (Framing, error) {
	connTokens := fieldTokens(fields, "connection")
	codings := fieldTokens(fields, "transfer-encoding")

	var framing Framing

	hasClose := contains(connTokens, "close")
	if version.AtLeast(http.Version11) {
		framing.Reusable = !hasClose
	} else {
		framing.Reusable = contains(connTokens, "keep-alive") && !hasClose
	}

	contentLength, hasContentLength, err := contentLength(fields)

	switch {
	case method == "HEAD" || status == 204 || status == 304 || (100 <= status && status < 200):
		framing.Mode = ModeCounted
		return framing, nil

	case version.AtLeast(http.Version11) && contains(codings, CodingChunked):
		framing.Mode = ModeChunked
		return framing, nil

	case version.AtLeast(http.Version11) && len(codings) > 0:
		// Codings other than chunked cannot be delimited.
		framing.Mode = ModeClose
		framing.Reusable = false
		return framing, nil
	}

	if err != nil {
		return Framing{}, err
	}

	if version.AtLeast(http.Version11) {
		switch {
		case hasContentLength:
			framing.Mode = ModeCounted
			framing.Length = contentLength
		case hasClose:
			framing.Mode = ModeClose
		default:
			framing.Mode = ModeCounted
		}
		return framing, nil
	}

	if hasContentLength && framing.Reusable {
		framing.Mode = ModeCounted
		framing.Length = contentLength
		return framing, nil
	}

	framing.Mode = ModeClose
	framing.Reusable = false
	return framing, nil
}

func contentLength(fields []http.Field) (length uint64, found bool, err error) {
	for _, field := range fields {
		if !strcomp.EqualFold(uf.B2S(field.Name), "content-length") {
			continue
		}

		for _, value := range rule.SplitList(string(field.Value)) {
			if !rule.IsDigits(value) {
				return 0, false, errors.Wrapf(ErrInvalidContentLength, "%q", value)
			}

			n, err := strconv.ParseUint(value, 10, 64)
			if err != nil {
				return 0, false, errors.Wrapf(ErrInvalidContentLength, "%q", value)
			}

			if found && n != length {
				return 0, false, ErrConflictingContentLength
			}
			length, found = n, true
		}
	}

	return length, found, nil
}

// fieldTokens collects the lowercased list members of every field named name.
func fieldTokens(fields []http.Field, name string) []string {
	tokens := make([]string, 0)
	for _, field := range fields {
		if !strcomp.EqualFold(uf.B2S(field.Name), name) {
			continue
		}
		for _, member := range rule.SplitList(string(field.Value)) {
			if member == "" {
				continue
			}
			// Parameters do not matter for framing.
			member, _, _ = strings.Cut(member, ";")
			tokens = append(tokens, strings.ToLower(strings.TrimFunc(member, rule.IsWhitespace)))
		}
	}
	return tokens
}

func contains(tokens []string, token string) bool {
	for _, t := range tokens {
		if t == token {
			return true
		}
	}
	return false
}
