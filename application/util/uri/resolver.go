package uri

import (
	"strings"

	"http-inspector/lib/ds/stack"

	"github.com/pkg/errors"
)

// RefResolver resolves references found in a document against its base.
type RefResolver struct {
	base URI
}

func NewRefResolver(base URI) (*RefResolver, error) {
	if base.IsRelativeRef() {
		return nil, errors.New("base URI cannot be a relative ref")
	}
	// The base fragment never carries over.
	base.Fragment = nil
	return &RefResolver{base: base}, nil
}

func (rr *RefResolver) Base() URI { return rr.base }

// Resolve transforms ref into a target URI.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc3986#section-5.2.2
func (rr *RefResolver) Resolve(ref URI) URI {
	var out URI

	switch {
	case ref.Scheme != "":
		out = ref
		out.Path = removeDotSegments(ref.Path)
	case ref.Authority != nil:
		out = ref
		out.Scheme = rr.base.Scheme
		out.Path = removeDotSegments(ref.Path)
	default:
		out.Scheme = rr.base.Scheme
		out.Authority = rr.base.Authority

		switch {
		case ref.Path == "":
			out.Path = rr.base.Path
			out.Query = ref.Query
			if out.Query == nil {
				out.Query = rr.base.Query
			}
		case strings.HasPrefix(ref.Path, "/"):
			out.Path = removeDotSegments(ref.Path)
			out.Query = ref.Query
		default:
			out.Path = removeDotSegments(mergePath(rr.base, ref.Path))
			out.Query = ref.Query
		}
	}

	out.Fragment = ref.Fragment
	return out
}

// ResolveString parses ref and resolves it.
func (rr *RefResolver) ResolveString(ref string) (URI, error) {
	parsed, err := Parse(ref)
	if err != nil {
		return URI{}, err
	}
	return rr.Resolve(parsed), nil
}

// Reference: https://datatracker.ietf.org/doc/html/rfc3986#section-5.2.3
func mergePath(base URI, path string) string {
	if base.Authority != nil && base.Path == "" {
		return "/" + path
	}
	if idx := strings.LastIndexByte(base.Path, '/'); idx >= 0 {
		return base.Path[:idx+1] + path
	}
	return path
}

// Reference: https://datatracker.ietf.org/doc/html/rfc3986#section-5.2.4
func removeDotSegments(path string) string {
	out := stack.New[string](0)

	for len(path) > 0 {
		var found bool

		if path, found = strings.CutPrefix(path, "../"); found {
			continue
		}
		if path, found = strings.CutPrefix(path, "./"); found {
			continue
		}

		if path, found = strings.CutPrefix(path, "/./"); found {
			path = "/" + path
			continue
		}
		if path == "/." {
			path = "/"
			continue
		}

		// "/.." drops the last output segment.
		if path, found = strings.CutPrefix(path, "/../"); found {
			_, _ = out.Pop()
			path = "/" + path
			continue
		}
		if path == "/.." {
			_, _ = out.Pop()
			path = "/"
			continue
		}

		if path == "." || path == ".." {
			break
		}

		// Move the first segment, with its leading '/', to the output.
		idx := strings.IndexByte(path[1:], '/') + 1
		if idx == 0 {
			idx = len(path)
		}
		out.Push(path[:idx])
		path = path[idx:]
	}

	return strings.Join(out.Data(), "")
}
