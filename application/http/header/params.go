package header

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"http-inspector/application/http/note"
	"http-inspector/application/util/rule"
)

// Params holds parameters by lowercase name.
// A parameter without a value maps to the empty string.
type Params map[string]string

// StarPolicy reports whether the extended form name* is forbidden for name.
type StarPolicy func(name string) bool

// AllowStar allows the extended form for every parameter.
func AllowStar(string) bool { return false }

// NoStar forbids the extended form for names, or for all parameters when
// none are given.
func NoStar(names ...string) StarPolicy {
	return func(name string) bool {
		if len(names) == 0 {
			return true
		}
		for _, n := range names {
			if n == name {
				return true
			}
		}
		return false
	}
}

// ParseParams parses a ';' separated parameter list.
// Malformed parameters are dropped with a note.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc8187
func ParseParams(s string, add note.AddFunc, forbidStar StarPolicy) Params {
	params := make(Params)

	for _, member := range rule.SplitParams(s, ';') {
		if member == "" {
			continue
		}

		key, val, found := strings.Cut(member, "=")
		key = strings.TrimFunc(key, rule.IsWhitespace)
		val = strings.TrimFunc(val, rule.IsWhitespace)
		if !rule.IsValidToken(key) {
			continue
		}

		norm := strings.ToLower(key)
		if !found {
			params[norm] = ""
			continue
		}
		if val == "" {
			continue
		}

		if _, ok := params[norm]; ok {
			add(ParamRepeats, note.V("param", norm))
		}
		if len(val) >= 2 && val[0] == '\'' && val[len(val)-1] == '\'' {
			add(ParamSingleQuoted,
				note.V("param", norm),
				note.V("param_val", val),
				note.V("param_val_unquoted", val[1:len(val)-1]),
			)
		}

		if !strings.HasSuffix(norm, "*") {
			params[norm] = rule.UnquoteString(val)
			continue
		}

		base := strings.TrimSuffix(norm, "*")
		if forbidStar != nil && forbidStar(base) {
			add(ParamStarBad, note.V("param", base))
			continue
		}

		if decoded, ok := decodeExtValue(norm, val, add); ok {
			params[norm] = decoded
		}
	}

	return params
}

// decodeExtValue decodes charset'language'value.
func decodeExtValue(name, val string, add note.AddFunc) (string, bool) {
	if rule.IsQuoted([]byte(val)) {
		add(ParamStarQuoted, note.V("param", name))
		val = val[1 : len(val)-1]
	}

	parts := strings.SplitN(val, "'", 3)
	if len(parts) != 3 {
		add(ParamStarError, note.V("param", name))
		return "", false
	}

	enc := strings.ToLower(parts[0])
	switch {
	case enc == "":
		add(ParamStarNoCharset, note.V("param", name))
		return "", false
	case enc != "utf-8":
		add(ParamStarCharset, note.V("param", name), note.V("enc", enc))
		return "", false
	}

	unescaped, err := url.PathUnescape(parts[2])
	if err != nil || !utf8.ValidString(unescaped) {
		add(ParamStarError, note.V("param", name))
		return "", false
	}

	return unescaped, true
}
