package header

import (
	"strconv"
	"strings"

	"http-inspector/application/http/note"
	"http-inspector/application/http/syntax"
	"http-inspector/application/util/rule"
)

// Caching and validation fields.
func cachingEntries() []Entry {
	return []Entry{
		{
			Name: "Age", List: true,
			Response: true,
			Parse: parseAge, Join: joinLastRepeat,
		},
		{
			Name: "Cache-Control", Grammar: syntax.CacheDirective, List: true,
			Request: true, Response: true,
			Parse: parseCacheDirective, Join: joinDirectives,
		},
		{
			Name: "Date",
			Request: true, Response: true,
			Parse: parseDate,
		},
		{
			Name: "ETag", Grammar: syntax.ETag,
			Response: true,
			Parse: parseETag,
		},
		{
			Name: "Expires",
			Response: true,
			Parse: parseDate,
		},
		{
			Name: "Last-Modified",
			Response: true,
			Parse: parseDate,
		},
		{
			Name: "Pragma", Grammar: syntax.PragmaDirective, List: true,
			Request: true, Response: true,
			Parse: parseLower, Join: joinPragma,
		},
		{
			Name: "Vary", Grammar: syntax.FieldName, List: true,
			Response: true,
			Parse: parseLower, Join: joinUnique,
		},
		{
			Name: "Warning", Grammar: syntax.WarningValue, List: true, Deprecated: true,
			Request: true, Response: true,
			Parse: parseString, Join: joinStrings,
		},
	}
}

// parseAge returns the age in seconds.
func parseAge(value string, add note.AddFunc) (any, bool) {
	age, err := strconv.ParseInt(strings.TrimFunc(value, rule.IsWhitespace), 10, 64)
	if err != nil {
		add(AgeNotInt)
		return nil, false
	}
	if age < 0 {
		add(AgeNegative)
		return nil, false
	}
	return age, true
}

// joinLastRepeat is the single field policy for fields split like lists.
func joinLastRepeat(values []any, add note.AddFunc) (any, bool) {
	if len(values) > 1 {
		add(SingleHeaderRepeat)
	}
	return values[len(values)-1], true
}

func parseCacheDirective(value string, add note.AddFunc) (any, bool) {
	parsed, ok := parseDirective(value, add)
	if !ok {
		return nil, false
	}

	d := parsed.(Directive)
	switch strings.ToLower(d.Name) {
	case "max-age", "s-maxage":
		if !d.HasValue || !rule.IsDigits(d.Value) {
			add(BadCCSyntax, note.V("bad_cc_attr", strings.ToLower(d.Name)))
			return nil, false
		}
	}

	return d, true
}

func parseETag(value string, _ note.AddFunc) (any, bool) {
	value = strings.TrimFunc(value, rule.IsWhitespace)
	if strings.HasPrefix(value, "W/") {
		return ETag{Weak: true, Tag: rule.UnquoteString(value[2:])}, true
	}
	return ETag{Tag: rule.UnquoteString(value)}, true
}

func joinPragma(values []any, add note.AddFunc) (any, bool) {
	joined, _ := joinStrings(values, add)
	directives := joined.([]string)

	other := false
	for _, d := range directives {
		if d == "no-cache" {
			continue
		}
		other = true
	}

	if contains(directives, "no-cache") {
		add(PragmaNoCache)
	}
	if other {
		add(PragmaOther)
	}

	return directives, true
}
