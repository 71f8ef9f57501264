package header

import (
	"math/big"
	"strings"

	"http-inspector/application/http/note"
	"http-inspector/application/http/syntax"
	"http-inspector/application/util/rule"
)

// Framing and connection management fields.
func messageEntries() []Entry {
	return []Entry{
		{
			Name: "Connection", Grammar: syntax.ConnectionOption, List: true,
			Request: true, Response: true,
			Parse: parseLower, Join: joinStrings,
		},
		{
			Name: "Content-Length", Grammar: syntax.ContentLength,
			Request: true, Response: true,
			Parse: parseContentLength,
		},
		{
			Name: "Keep-Alive", Grammar: syntax.CacheDirective, List: true,
			Request: true, Response: true,
			Parse: parseDirective, Join: joinDirectives,
		},
		{
			Name: "Trailer", Grammar: syntax.FieldName, List: true,
			Request: true, Response: true,
			Parse: parseString, Join: joinStrings,
		},
		{
			Name: "Transfer-Encoding", Grammar: syntax.TransferCoding, List: true,
			Request: true, Response: true,
			Parse: parseTransferCoding, Join: joinStrings, Evaluate: evaluateTransferEncoding,
		},
		{
			Name: "Upgrade", Grammar: syntax.Protocol, List: true,
			Request: true, Response: true,
			Parse: parseString, Join: joinStrings,
		},
		{
			Name: "Via", Grammar: syntax.ViaElement, List: true,
			Request: true, Response: true,
			Parse: parseString, Join: joinVia,
		},
		{
			Name: "MIME-Version", Grammar: syntax.MIMEVersion,
			Request: true, Response: true,
			Parse: parseMIMEVersion,
		},
	}
}

// parseContentLength keeps arbitrarily large lengths exact.
func parseContentLength(value string, _ note.AddFunc) (any, bool) {
	value = strings.TrimFunc(value, rule.IsWhitespace)
	if !rule.IsDigits(value) {
		return nil, false
	}
	n, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return nil, false
	}
	return n, true
}

func parseTransferCoding(value string, add note.AddFunc) (any, bool) {
	coding, params, _ := strings.Cut(value, ";")
	coding = strings.ToLower(strings.TrimFunc(coding, rule.IsWhitespace))

	if len(ParseParams(params, add, NoStar())) > 0 {
		add(TransferCodingParam)
	}
	return coding, true
}

func evaluateTransferEncoding(value any, _ Context, add note.AddFunc) {
	codings := value.([]string)

	unwanted := make([]string, 0)
	identity := false
	for _, c := range codings {
		switch c {
		case "chunked":
		case "identity":
			identity = true
		default:
			if !contains(unwanted, c) {
				unwanted = append(unwanted, c)
			}
		}
	}

	if len(unwanted) > 0 {
		add(TransferCodingUnwanted, note.V("unwanted_codings", strings.Join(unwanted, ", ")))
	}
	if identity {
		add(TransferCodingIdentity)
	}
}

func joinVia(values []any, add note.AddFunc) (any, bool) {
	joined, _ := joinStrings(values, add)
	add(ViaPresent, note.V("via_list", strings.Join(joined.([]string), ", ")))
	return joined, true
}

func parseMIMEVersion(value string, add note.AddFunc) (any, bool) {
	add(MIMEVersion)
	return value, true
}

func contains(list []string, s string) bool {
	for _, l := range list {
		if l == s {
			return true
		}
	}
	return false
}
