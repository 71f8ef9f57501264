package semantic

import (
	"strings"

	"http-inspector/application/http"

	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
)

// Request describes an exchange to issue.
// URI must be absolute; Body requires a matching Content-Length field.
type Request struct {
	Method  Method
	URI     string
	Headers []http.Field
	Body    []byte

	// SkipBody asks the engine to discard the response body.
	// The body is still read so the connection can be reused.
	SkipBody bool
}

// Clone returns a deep copy that can be modified for a probe.
func (r *Request) Clone() *Request {
	clone := *r
	clone.Headers = make([]http.Field, len(r.Headers))
	for idx, f := range r.Headers {
		clone.Headers[idx] = http.Field{Name: append([]byte(nil), f.Name...), Value: append([]byte(nil), f.Value...)}
	}
	clone.Body = append([]byte(nil), r.Body...)
	return &clone
}

// Header returns the first value of the named field.
func (r *Request) Header(name string) (string, bool) {
	for _, f := range r.Headers {
		if strcomp.EqualFold(uf.B2S(f.Name), name) {
			return string(f.Value), true
		}
	}
	return "", false
}

// HasHeader reports whether the named field is present.
func (r *Request) HasHeader(name string) bool {
	_, ok := r.Header(name)
	return ok
}

// SetHeader replaces every field with the given name by a single one.
func (r *Request) SetHeader(name, value string) {
	r.DelHeader(name)
	r.Headers = append(r.Headers, http.NewField(name, value))
}

func (r *Request) DelHeader(name string) {
	kept := r.Headers[:0]
	for _, f := range r.Headers {
		if !strcomp.EqualFold(uf.B2S(f.Name), name) {
			kept = append(kept, f)
		}
	}
	r.Headers = kept
}

// HeaderTokens returns the lowercased list members of the named field.
func (r *Request) HeaderTokens(name string) []string {
	tokens := make([]string, 0)
	for _, f := range r.Headers {
		if !strcomp.EqualFold(uf.B2S(f.Name), name) {
			continue
		}
		for _, v := range strings.Split(string(f.Value), ",") {
			if v = strings.TrimSpace(v); v != "" {
				tokens = append(tokens, strings.ToLower(v))
			}
		}
	}
	return tokens
}
