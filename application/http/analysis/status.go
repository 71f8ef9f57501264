package analysis

import (
	"slices"

	"http-inspector/application/http/message"
	"http-inspector/application/http/note"
	"http-inspector/application/http/semantic"
	"http-inspector/application/http/semantic/status"
)

// Informational notes per status code.
var statusNotes = map[uint]note.Template{
	400: StatusBadRequest,
	403: StatusForbidden,
	404: StatusNotFound,
	406: StatusNotAcceptable,
	409: StatusConflict,
	410: StatusGone,
	413: StatusContentTooLarge,
	415: StatusUnsupportedMedia,
	418: StatusTeapot,
	500: StatusInternalServerError,
	501: StatusNotImplemented,
	502: StatusBadGateway,
	503: StatusServiceUnavailable,
	504: StatusGatewayTimeout,
	505: StatusVersionUnsupported,
}

// Statuses whose meaning depends on a Location header.
var redirectStatuses = []uint{301, 302, 303, 307, 308}

// CheckStatus checks resp against what its status code requires.
func CheckStatus(request *semantic.Request, resp *message.Response, notes *note.Collector) {
	code := resp.StatusCode
	add := func(subject string, t note.Template, vars ...note.Var) {
		notes.Add(subject, t, append(vars, note.V("status", code))...)
	}

	s, ok := status.FromCode(code)
	if !ok {
		add("status", StatusNonstandard)
		return
	}
	if s.Deprecated {
		add("status", StatusDeprecated)
	}
	if s.Reserved {
		add("status", StatusReserved)
	}

	hasLocation := resp.Parsed.Has("location")

	switch {
	case code == status.Continue.Code:
		if !slices.Contains(request.HeaderTokens("Expect"), "100-continue") {
			add("status", UnexpectedContinue)
		}
	case code == status.SwitchingProtocols.Code:
		if !request.HasHeader("Upgrade") {
			add("status", UpgradeNotRequested)
		}
	case code == status.Created.Code:
		if request.Method.IsSafe() {
			add("status", CreatedSafeMethod, note.V("method", request.Method))
		}
		if !hasLocation {
			add("header-location", CreatedWithoutLocation)
		}
	case code == status.PartialContent.Code:
		if !request.HasHeader("Range") {
			add("status", PartialNotRequested)
		}
		if !resp.Parsed.Has("content-range") {
			add("header-content-range", PartialWithoutRange)
		}
	case slices.Contains(redirectStatuses, code):
		if !hasLocation {
			add("header-location", RedirectNoLocation)
		}
	case code == status.NotModified.Code:
		if !resp.Parsed.Has("date") {
			add("status", NoDate304)
		}
	case code == status.RequestURITooLong.Code:
		add("uri", StatusURITooLong, note.V("uri_len", len(request.URI)))
	}

	if t, ok := statusNotes[code]; ok {
		add("status", t)
	}
}
