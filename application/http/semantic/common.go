package semantic

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

func DefaultPort(scheme string) uint16 {
	switch scheme {
	case "http":
		return 80
	case "https":
		return 443
	}
	return 0
}

type Method string

const (
	MethodGet     Method = "GET"
	MethodHead    Method = "HEAD"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodDelete  Method = "DELETE"
	MethodConnect Method = "CONNECT"
	MethodOptions Method = "OPTIONS"
	MethodTrace   Method = "TRACE"
)

// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-9.2.1-3
func DefaultSafeMethods() []Method {
	return []Method{
		MethodGet, MethodHead, MethodOptions, MethodTrace,
	}
}

// RetryableMethods are reissued transparently when a connection dies
// before the response starts.
func RetryableMethods() []Method {
	return []Method{MethodGet, MethodHead}
}

func (m Method) IsSafe() bool { return m.in(DefaultSafeMethods()) }

func (m Method) in(methods []Method) bool {
	for _, method := range methods {
		if m == method {
			return true
		}
	}
	return false
}

// IsRetryable reports whether m is on the retry allow-list.
func (m Method) IsRetryable() bool { return m.in(RetryableMethods()) }

type DateFormat uint8

const (
	DateIMFFixdate DateFormat = iota
	DateRFC850
	DateAsctime
)

// Obsolete reports whether the format is one recipients must accept but senders must not generate.
func (f DateFormat) Obsolete() bool { return f != DateIMFFixdate }

const (
	// Preferred format: IMF-fixdate
	imfFixDateFormat = time.RFC1123
	// Obsolete RFC 850 format
	rfc850DateFormat = time.RFC850
	// Obsolete asctime format
	asctimeDateFormat = time.ANSIC
)

var ErrInvalidDate = errors.New("invalid date")

// ParseDate parses an HTTP-date. The result is in UTC.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-5.6.7
func ParseDate(raw string) (time.Time, DateFormat, error) {
	layouts := []struct {
		layout string
		format DateFormat
		gmt    bool
	}{
		{imfFixDateFormat, DateIMFFixdate, true},
		{rfc850DateFormat, DateRFC850, true},
		{asctimeDateFormat, DateAsctime, false},
	}

	for _, l := range layouts {
		if l.gmt && !strings.HasSuffix(raw, " GMT") {
			continue
		}
		if t, err := time.Parse(l.layout, raw); err == nil {
			return t.UTC(), l.format, nil
		}
	}

	return time.Time{}, 0, errors.Wrapf(ErrInvalidDate, "%q", raw)
}

// FormatDate renders t as an IMF-fixdate.
func FormatDate(t time.Time) string {
	return t.UTC().Format(http1123GMT)
}

const http1123GMT = "Mon, 02 Jan 2006 15:04:05 GMT"
