package header

import (
	"strconv"
	"strings"

	"http-inspector/application/http/note"
	"http-inspector/application/http/syntax"
	"http-inspector/application/util/rule"
)

// Representation metadata fields.
func contentEntries() []Entry {
	return []Entry{
		{
			Name: "Content-Base", Grammar: syntax.AbsoluteURI, Deprecated: true,
			Request: true, Response: true,
			Parse: parseString,
		},
		{
			Name: "Content-Disposition", Grammar: syntax.ContentDisposition,
			Response: true,
			Parse: parseDisposition,
		},
		{
			Name: "Content-Encoding", Grammar: syntax.ContentCoding, List: true,
			Request: true, Response: true,
			Parse: parseLower, Join: joinStrings, Evaluate: evaluateContentEncoding,
		},
		{
			Name: "Content-Language", Grammar: syntax.LanguageTag, List: true,
			Request: true, Response: true,
			Parse: parseString, Join: joinStrings,
		},
		{
			Name: "Content-Location", Grammar: syntax.ContentLocation,
			Response: true,
			Parse: parseString,
		},
		{
			Name: "Content-MD5", Grammar: syntax.ContentMD5,
			Request: true, Response: true,
			Parse: parseString,
		},
		{
			Name: "Content-Range", Grammar: syntax.ContentRange,
			Response: true,
			Parse: parseContentRange, Evaluate: evaluateContentRange,
		},
		{
			Name: "Content-Type", Grammar: syntax.ContentType,
			Request: true, Response: true,
			Parse: parseMediaType,
		},
	}
}

func parseDisposition(value string, add note.AddFunc) (any, bool) {
	typ, params, _ := strings.Cut(value, ";")

	d := Disposition{
		Type:   strings.ToLower(strings.TrimFunc(typ, rule.IsWhitespace)),
		Params: ParseParams(params, add, AllowStar),
	}

	if d.Type != "inline" && d.Type != "attachment" {
		add(DispositionUnknown, note.V("disposition", d.Type))
	}

	filename, ok := d.Params["filename"]
	if !ok {
		add(DispositionOmitsFilename)
	}
	if strings.Contains(filename, "%") {
		add(DispositionFilenamePct)
	}
	if strings.Contains(filename, "/") || strings.Contains(d.Params["filename*"], `\`) {
		add(DispositionFilenamePath)
	}

	return d, true
}

// evaluateContentEncoding flags codings other than the gzip that requests ask for.
func evaluateContentEncoding(value any, ctx Context, add note.AddFunc) {
	if ctx.Request {
		return
	}

	unwanted := make([]string, 0)
	for _, c := range value.([]string) {
		if c != "gzip" && c != "x-gzip" {
			unwanted = append(unwanted, c)
		}
	}
	if len(unwanted) > 0 {
		add(EncodingUnwanted, note.V("unwanted_codings", strings.Join(unwanted, ", ")))
	}
}

func parseContentRange(value string, _ note.AddFunc) (any, bool) {
	value = strings.TrimFunc(value, rule.IsWhitespace)
	cr := ContentRange{First: -1, Last: -1, Complete: -1, Raw: value}

	unit, resp, found := strings.Cut(value, " ")
	if !found {
		return nil, false
	}
	cr.Unit = strings.ToLower(unit)
	if cr.Unit != "bytes" {
		return cr, true
	}

	positions, complete, found := strings.Cut(resp, "/")
	if !found {
		return nil, false
	}

	if complete != "*" {
		n, err := strconv.ParseInt(complete, 10, 64)
		if err != nil {
			return nil, false
		}
		cr.Complete = n
	}

	if positions == "*" {
		return cr, true
	}

	first, last, found := strings.Cut(positions, "-")
	if !found {
		return nil, false
	}
	f, err1 := strconv.ParseInt(first, 10, 64)
	l, err2 := strconv.ParseInt(last, 10, 64)
	if err1 != nil || err2 != nil || l < f {
		return nil, false
	}
	cr.First, cr.Last = f, l

	return cr, true
}

func evaluateContentRange(_ any, ctx Context, add note.AddFunc) {
	if ctx.StatusCode != 206 && ctx.StatusCode != 416 {
		add(ContentRangeMeaningless)
	}
}

func parseMediaType(value string, add note.AddFunc) (any, bool) {
	typ, params, _ := strings.Cut(value, ";")
	return MediaType{
		Type:   strings.ToLower(strings.TrimFunc(typ, rule.IsWhitespace)),
		Params: ParseParams(params, add, NoStar("charset")),
	}, true
}
