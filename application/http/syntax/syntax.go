package syntax

import (
	"regexp"
)

// group wraps parts in a non-capturing group.
func group(parts ...string) string {
	s := "(?:"
	for _, p := range parts {
		s += p
	}
	return s + ")"
}

// alt joins alternatives in a non-capturing group.
func alt(parts ...string) string {
	s := "(?:"
	for idx, p := range parts {
		if idx > 0 {
			s += "|"
		}
		s += p
	}
	return s + ")"
}

// ListRule wraps element in the sender form of the #rule.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc7230#section-7
func ListRule(element string) string {
	return group(element, group(OWS, ",", OWS, element), "*")
}

// Compile anchors exp so that it must match the whole value,
// surrounding whitespace aside.
func Compile(exp string) *regexp.Regexp {
	return regexp.MustCompile(`^[ \t]*(?:` + exp + `)[ \t]*$`)
}

// Match reports whether the whole of value matches exp.
func Match(exp, value string) bool {
	return Compile(exp).MatchString(value)
}
