package uri

import (
	"net/netip"
	"strings"

	"http-inspector/application/util/rule"

	"github.com/pkg/errors"
)

func containsCTL(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < ' ' || s[i] == 0x7f {
			return true
		}
	}
	return false
}

// Reference: https://datatracker.ietf.org/doc/html/rfc3986#section-2.2
func isSubDelim(c byte) bool {
	return strings.IndexByte("!$&'()*+,;=", c) >= 0
}

// Reference: https://datatracker.ietf.org/doc/html/rfc3986#section-2.3
func isUnreserved(c byte) bool {
	return rule.IsAlpha(rune(c)) || rule.IsDigit(rune(c)) || strings.IndexByte("-._~", c) >= 0
}

// Reference: https://datatracker.ietf.org/doc/html/rfc3986#section-2.1
func isPercentEncoded(s string) bool {
	return len(s) == 3 && s[0] == '%' && rule.IsHexDigit(rune(s[1])) && rule.IsHexDigit(rune(s[2]))
}

// allOf reports whether s consists of bytes accepted by ok and
// well-formed percent-encodings.
func allOf(s string, ok func(c byte) bool) bool {
	for idx := 0; idx < len(s); idx++ {
		if ok(s[idx]) {
			continue
		}
		if idx+3 <= len(s) && isPercentEncoded(s[idx:idx+3]) {
			idx += 2
			continue
		}
		return false
	}
	return true
}

// Reference: https://datatracker.ietf.org/doc/html/rfc3986#section-3.3
func isPchar(c byte) bool {
	return isUnreserved(c) || isSubDelim(c) || c == ':' || c == '@'
}

func isQueryFragValid(s string) bool {
	return allOf(s, func(c byte) bool { return isPchar(c) || c == '/' || c == '?' })
}

func isValidUserInfo(s string) bool {
	return allOf(s, func(c byte) bool { return isUnreserved(c) || isSubDelim(c) || c == ':' })
}

func isValidRegName(s string) bool {
	return allOf(s, func(c byte) bool { return isUnreserved(c) || isSubDelim(c) })
}

// Reference: https://datatracker.ietf.org/doc/html/rfc3986#section-3.1
func assertValidScheme(scheme string) error {
	if scheme == "" {
		return errors.New("scheme is empty")
	}
	if !rule.IsAlpha(rune(scheme[0])) {
		return errors.New("scheme doesn't start with ALPHA")
	}

	for idx := 1; idx < len(scheme); idx++ {
		c := scheme[idx]
		if !(rule.IsAlpha(rune(c)) || rule.IsDigit(rune(c)) || c == '+' || c == '-' || c == '.') {
			return errors.Errorf("scheme contains invalid byte %q", c)
		}
	}

	return nil
}

// Reference: https://datatracker.ietf.org/doc/html/rfc3986#section-3.2.2
func assertValidHost(host string) error {
	if host == "" {
		// An empty reg-name is valid.
		return nil
	}
	if len(host) > 255 {
		return errors.Errorf("host length exceeds limit(255): %d", len(host))
	}

	if host[0] == '[' && host[len(host)-1] == ']' {
		literal := host[1 : len(host)-1]
		if addr, err := netip.ParseAddr(literal); err == nil && addr.Is6() {
			return nil
		}
		if isIPvFuture(literal) {
			return nil
		}
		return errors.New("host is expected to be IP literal, but was malformed")
	}

	if isValidRegName(host) {
		// Dotted IPv4 is a subset of reg-name.
		return nil
	}

	return errors.New("host is neither ipv4 addr nor valid reg-name")
}

func isIPvFuture(s string) bool {
	if len(s) < 4 || s[0] != 'v' || !rule.IsHexDigit(rune(s[1])) {
		return false
	}

	version, rest, ok := strings.Cut(s[1:], ".")
	if !ok || rest == "" {
		return false
	}
	for _, c := range []byte(version) {
		if !rule.IsHexDigit(rune(c)) {
			return false
		}
	}
	for _, c := range []byte(rest) {
		if !(isUnreserved(c) || isSubDelim(c) || c == ':') {
			return false
		}
	}

	return true
}

func assertValidPath(path string, hasAuthority bool, isRelative bool) error {
	if hasAuthority {
		if path != "" && path[0] != '/' {
			return errors.New("URI with authority must either be empty or start with '/'")
		}
	} else if strings.HasPrefix(path, "//") {
		return errors.New("URI without authority should not start with '//'")
	}

	segments := strings.Split(path, "/")
	if isRelative && strings.ContainsRune(segments[0], ':') {
		return errors.New("relative URI reference's first segment should not contain ':'")
	}

	for _, segment := range segments {
		if !allOf(segment, isPchar) {
			return errors.Errorf("path segment %q should be pchar", segment)
		}
	}

	return nil
}
