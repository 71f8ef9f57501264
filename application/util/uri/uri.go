package uri

import (
	"strconv"
	"strings"

	"http-inspector/application/util/rule"

	"github.com/pkg/errors"
	"golang.org/x/net/idna"
)

// URI keeps every component in its escaped form, the way it goes on the wire.
type URI struct {
	Scheme    string
	Authority *Authority
	Path      string
	Query     *string
	Fragment  *string
}

type Authority struct {
	UserInfo string
	// Host is lowercase. IP literals keep their brackets.
	Host string
	Port *uint16
}

// Reference: https://datatracker.ietf.org/doc/html/rfc3986#section-4.2
func (u URI) IsRelativeRef() bool { return u.Scheme == "" }

// Reference: https://datatracker.ietf.org/doc/html/rfc3986#section-4.3
func (u URI) IsAbsoluteURI() bool { return u.Scheme != "" && u.Fragment == nil }

// Reference: https://datatracker.ietf.org/doc/html/rfc3986#section-5.3
func (u URI) String() string {
	b := new(strings.Builder)
	if u.Scheme != "" {
		b.WriteString(u.Scheme)
		b.WriteByte(':')
	}

	if a := u.Authority; a != nil {
		b.WriteString("//")
		if a.UserInfo != "" {
			b.WriteString(a.UserInfo)
			b.WriteByte('@')
		}
		b.WriteString(a.Host)
		if a.Port != nil {
			b.WriteByte(':')
			b.WriteString(strconv.FormatUint(uint64(*a.Port), 10))
		}
	}

	b.WriteString(u.Path)

	if u.Query != nil {
		b.WriteByte('?')
		b.WriteString(*u.Query)
	}
	if u.Fragment != nil {
		b.WriteByte('#')
		b.WriteString(*u.Fragment)
	}

	return b.String()
}

// RequestTarget returns the origin-form request target.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc9112#section-3.2.1
func (u URI) RequestTarget() string {
	target := u.Path
	if target == "" {
		target = "/"
	}
	if u.Query != nil {
		target += "?" + *u.Query
	}
	return target
}

// HostPort returns the bare host and the port, falling back to defaultPort.
func (a Authority) HostPort(defaultPort uint16) (string, uint16) {
	host := strings.TrimSuffix(strings.TrimPrefix(a.Host, "["), "]")
	if a.Port == nil {
		return host, defaultPort
	}
	return host, *a.Port
}

// Parse parses a URI reference. Non-ASCII reg-names are converted
// to their IDNA ASCII form.
func Parse(raw string) (URI, error) {
	if containsCTL(raw) {
		return URI{}, errors.New("URI should not contain CTL bytes")
	}

	var u URI

	scheme, rest, err := cutScheme(raw)
	if err != nil {
		return URI{}, errors.Wrap(err, "getting scheme")
	}
	u.Scheme = strings.ToLower(scheme)

	if after, ok := strings.CutPrefix(rest, "//"); ok {
		end := strings.IndexAny(after, "/?#")
		if end < 0 {
			end = len(after)
		}

		authority, err := parseAuthority(after[:end])
		if err != nil {
			return URI{}, errors.Wrap(err, "parsing authority")
		}
		u.Authority = &authority
		rest = after[end:]
	}

	if idx := strings.IndexByte(rest, '#'); idx >= 0 {
		frag := rest[idx+1:]
		if !isQueryFragValid(frag) {
			return URI{}, errors.New("fragment is not valid")
		}
		u.Fragment = &frag
		rest = rest[:idx]
	}

	if idx := strings.IndexByte(rest, '?'); idx >= 0 {
		query := rest[idx+1:]
		if !isQueryFragValid(query) {
			return URI{}, errors.New("query is not valid")
		}
		u.Query = &query
		rest = rest[:idx]
	}

	if err := assertValidPath(rest, u.Authority != nil, u.IsRelativeRef()); err != nil {
		return URI{}, errors.Wrap(err, "path is not valid")
	}
	u.Path = rest

	return u, nil
}

// cutScheme splits off the scheme. A colon after the first '/', '?' or '#'
// belongs to the rest of a relative reference.
func cutScheme(raw string) (scheme, rest string, err error) {
	before, after, found := strings.Cut(raw, ":")
	if !found || strings.ContainsAny(before, "/?#") {
		return "", raw, nil
	}

	if err := assertValidScheme(before); err != nil {
		return "", "", err
	}
	return before, after, nil
}

func parseAuthority(raw string) (Authority, error) {
	var a Authority

	host := raw
	if idx := strings.LastIndexByte(raw, '@'); idx >= 0 {
		a.UserInfo, host = raw[:idx], raw[idx+1:]
		if !isValidUserInfo(a.UserInfo) {
			return Authority{}, errors.New("user information is not valid")
		}
	}

	host, portPart, err := splitHostPort(host)
	if err != nil {
		return Authority{}, err
	}

	if portPart != "" {
		port, err := parsePort(portPart)
		if err != nil {
			return Authority{}, errors.Wrap(err, "parsing port")
		}
		a.Port = &port
	}

	if !rule.IsASCII([]byte(host)) {
		ascii, err := idna.Lookup.ToASCII(host)
		if err != nil {
			return Authority{}, errors.Wrapf(err, "converting %q to ASCII", host)
		}
		host = ascii
	}

	if err := assertValidHost(host); err != nil {
		return Authority{}, errors.Wrap(err, "host is not valid")
	}
	a.Host = strings.ToLower(host)

	return a, nil
}

func splitHostPort(raw string) (host, port string, err error) {
	if strings.HasPrefix(raw, "[") {
		idx := strings.LastIndexByte(raw, ']')
		if idx < 0 {
			return "", "", errors.New("missing ']' in IP literal")
		}
		host, port = raw[:idx+1], raw[idx+1:]
		if port != "" && port[0] != ':' {
			return "", "", errors.Errorf("unexpected %q after IP literal", port)
		}
		return host, strings.TrimPrefix(port, ":"), nil
	}

	if idx := strings.LastIndexByte(raw, ':'); idx >= 0 {
		return raw[:idx], raw[idx+1:], nil
	}
	return raw, "", nil
}

// parsePort is stricter than the RFC, which allows any run of digits.
func parsePort(s string) (uint16, error) {
	if !rule.IsDigits(s) {
		return 0, errors.Errorf("port %q is not a number", s)
	}

	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, errors.Wrapf(err, "port %q", s)
	}
	return uint16(n), nil
}
