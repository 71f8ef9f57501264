package syntax

// URI productions. IP-literal is only checked for its character set.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc3986#appendix-A
var (
	unreserved = `[A-Za-z0-9\-._~]`
	pctEncoded = `(?:%` + HEXDIG + HEXDIG + `)`
	subDelims  = `[!$&'()*+,;=]`
	pchar      = alt(unreserved, pctEncoded, subDelims, `[:@]`)

	Scheme    = ALPHA + `[A-Za-z0-9+\-.]*`
	UserInfo  = alt(unreserved, pctEncoded, subDelims, `:`) + `*`
	ipLiteral = `\[[0-9A-Za-z:.]+\]`
	regName   = alt(unreserved, pctEncoded, subDelims) + `*`
	Host      = alt(ipLiteral, regName)
	Port      = DIGIT + `*`
	Authority = group(group(UserInfo, `@`), `?`, Host, group(`:`, Port), `?`)

	segment      = pchar + `*`
	segmentNz    = pchar + `+`
	segmentNzNc  = alt(unreserved, pctEncoded, subDelims, `@`) + `+`
	pathAbempty  = group(`/`, segment) + `*`
	pathAbsolute = group(`/`, group(segmentNz, group(`/`, segment), `*`), `?`)
	pathNoscheme = group(segmentNzNc, group(`/`, segment), `*`)
	pathRootless = group(segmentNz, group(`/`, segment), `*`)

	Query    = alt(pchar, `[/?]`) + `*`
	Fragment = Query

	hierPart     = alt(group(`//`, Authority, pathAbempty), pathAbsolute, pathRootless, ``)
	relativePart = alt(group(`//`, Authority, pathAbempty), pathAbsolute, pathNoscheme, ``)

	URI          = group(Scheme, `:`, hierPart, group(`\?`, Query), `?`, group(`#`, Fragment), `?`)
	AbsoluteURI  = group(Scheme, `:`, hierPart, group(`\?`, Query), `?`)
	RelativeRef  = group(relativePart, group(`\?`, Query), `?`, group(`#`, Fragment), `?`)
	URIReference = alt(URI, RelativeRef)
	PartialURI   = group(relativePart, group(`\?`, Query), `?`)
)
