package header

import (
	"strconv"
	"strings"
	"time"

	"http-inspector/application/http/note"
	"http-inspector/application/http/syntax"
	"http-inspector/application/util/rule"
)

// Fields that only make sense on responses.
func responseEntries() []Entry {
	return []Entry{
		{
			Name: "Accept-Ranges", Grammar: syntax.RangeUnit, List: true,
			Response: true,
			Parse: parseAcceptRange, Join: joinStrings,
		},
		{
			Name: "Allow", Grammar: syntax.Method, List: true,
			Request: true, Response: true,
			Parse: parseString, Join: joinStrings,
		},
		{
			Name: "Location", Grammar: syntax.Location,
			Response: true,
			Parse: parseString, Evaluate: evaluateLocation,
		},
		{
			Name: "Retry-After", Grammar: syntax.RetryAfter,
			Response: true,
			Parse: parseRetryAfter,
		},
		{
			Name: "Server", Grammar: syntax.Server,
			Response: true,
			Parse: parseString,
		},
		{
			Name: "X-Content-Type-Options", Grammar: syntax.Token,
			Response: true,
			Parse: parseLower, Evaluate: evaluateContentTypeOptions,
		},
		{
			Name: "X-Frame-Options", Grammar: syntax.Token + `(?:[ \t]+` + syntax.URI + `)?`,
			Response: true,
			Parse: parseLower, Evaluate: evaluateFrameOptions,
		},
		{
			Name: "X-XSS-Protection", Grammar: `[01](?:[ \t]*;[ \t]*` + syntax.Parameter + `)*`,
			Response: true,
			Parse: parseXSSProtection,
		},
	}
}

func parseAcceptRange(value string, add note.AddFunc) (any, bool) {
	unit := strings.ToLower(value)
	if unit != "bytes" && unit != "none" {
		add(UnknownRange, note.V("range", unit))
	}
	return unit, true
}

var absoluteURI = syntax.Compile(syntax.URI)

func evaluateLocation(value any, ctx Context, add note.AddFunc) {
	switch ctx.StatusCode {
	case 201, 300, 301, 302, 303, 305, 307, 308:
	default:
		add(LocationUndefined, note.V("status", ctx.StatusCode))
	}

	if !absoluteURI.MatchString(value.(string)) {
		add(LocationNotAbsolute)
	}
}

func parseRetryAfter(value string, add note.AddFunc) (any, bool) {
	value = strings.TrimFunc(value, rule.IsWhitespace)
	if rule.IsDigits(value) {
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, false
		}
		return RetryAfter{Delay: time.Duration(n) * time.Second}, true
	}

	date, ok := parseDate(value, add)
	if !ok {
		return nil, false
	}
	return RetryAfter{Date: date.(time.Time)}, true
}

func evaluateContentTypeOptions(value any, _ Context, add note.AddFunc) {
	if value.(string) == "nosniff" {
		add(ContentTypeOptions)
		return
	}
	add(ContentTypeOptionsUnknown)
}

func evaluateFrameOptions(value any, _ Context, add note.AddFunc) {
	switch value.(string) {
	case "deny":
		add(FrameOptionsDeny)
	case "sameorigin":
		add(FrameOptionsSameOrigin)
	default:
		add(FrameOptionsUnknown)
	}
}

func parseXSSProtection(value string, add note.AddFunc) (any, bool) {
	protect, params, _ := strings.Cut(value, ";")

	xss := XSSProtection{
		Enabled: strings.TrimFunc(protect, rule.IsWhitespace) == "1",
		Params:  ParseParams(params, add, NoStar()),
	}

	switch {
	case !xss.Enabled:
		add(XSSProtectionOff)
	case strings.ToLower(xss.Params["mode"]) == "block":
		add(XSSProtectionBlock)
	default:
		add(XSSProtectionOn)
	}

	return xss, true
}
