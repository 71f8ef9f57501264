package analysis

import (
	"strings"

	"http-inspector/application/http/message"
	"http-inspector/application/http/note"
	"http-inspector/application/http/semantic"
)

// Base is the primary exchange probes are derived from.
type Base struct {
	Request  *semantic.Request
	Response *message.Response
	// AskedGzip is set when the inspector added Accept-Encoding: gzip
	// to the primary request.
	AskedGzip bool
}

// Probe is an auxiliary exchange testing one server behaviour.
type Probe interface {
	Name() string
	// Preflight reports whether the probe applies to base.
	Preflight(base Base) bool
	// Request derives the probe request from the primary request.
	Request(base Base) *semantic.Request
	// Evaluate reports on the probe response. err is the fetch error, if any.
	Evaluate(base Base, resp *message.Response, err error, notes *note.Collector)
}

// DefaultProbes returns the probes in the order their notes are reported.
func DefaultProbes() []Probe {
	return []Probe{ETagValidate{}, LMValidate{}, Conneg{}, Range{}}
}

// failed reports an incomplete probe with t. It returns true when it did.
func failed(resp *message.Response, err error, notes *note.Collector, t note.Template) bool {
	if err == nil && resp.Complete {
		return false
	}

	problem := ""
	switch {
	case err != nil:
		problem = err.Error()
	case resp.Error != nil:
		problem = resp.Error.Error()
	}
	notes.Add("", t, note.V("problem", problem))
	return true
}

// checkMissingHeaders reports the fields of base absent from resp.
func checkMissingHeaders(base, resp *message.Response, names []string, notes *note.Collector, t note.Template) {
	missing := make([]string, 0)
	for _, name := range names {
		if base.Parsed.Has(name) && !resp.Parsed.Has(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		notes.Add("headers", t, note.V("missing_hdrs", strings.Join(missing, ", ")))
	}
}

func isRedirect(code uint) bool { return 300 <= code && code <= 399 }
