package syntax

// Semantics and content.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc7231#appendix-D
var (
	Parameter = group(Token, `=`, alt(Token, QuotedString))
	qvalue    = alt(group(`0`, group(`\.`, DIGIT+`{0,3}`), `?`), group(`1`, group(`\.0{0,3}`), `?`))
	weight    = group(OWS, `;`, OWS, `[qQ]=`, qvalue)

	dayName   = `(?:Mon|Tue|Wed|Thu|Fri|Sat|Sun)`
	dayNameL  = `(?:Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday)`
	month     = `(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)`
	timeOfDay = DIGIT + `{2}:` + DIGIT + `{2}:` + DIGIT + `{2}`

	IMFFixdate  = group(dayName, `, `, DIGIT+`{2} `, month, ` `, DIGIT+`{4} `, timeOfDay, ` GMT`)
	RFC850Date  = group(dayNameL, `, `, DIGIT+`{2}-`, month, `-`, DIGIT+`{2} `, timeOfDay, ` GMT`)
	AsctimeDate = group(dayName, ` `, month, ` `, alt(DIGIT+`{2}`, ` `+DIGIT), ` `, timeOfDay, ` `, DIGIT+`{4}`)
	ObsDate     = alt(RFC850Date, AsctimeDate)
	HTTPDate    = alt(IMFFixdate, ObsDate)

	mediaType   = group(Token, `/`, Token, group(OWS, `;`, OWS, Parameter), `*`)
	ContentType = mediaType

	ContentCoding   = Token
	ContentEncoding = ListRule(ContentCoding)
	ContentLanguage = ListRule(LanguageTag)
	ContentLocation = alt(AbsoluteURI, PartialURI)

	codings        = alt(ContentCoding, `identity`, `\*`)
	AcceptEncoding = group(ListRule(group(codings, weight, `?`))) + `?`

	Method = Token
	Allow  = group(ListRule(Method)) + `?`

	Date          = HTTPDate
	Location      = URIReference
	DelaySeconds  = DIGIT + `+`
	RetryAfter    = alt(HTTPDate, DelaySeconds)
	product       = group(Token, group(`/`, Token), `?`)
	Server        = group(product, group(RWS, alt(product, Comment)), `*`)
	UserAgent     = Server
	VaryElement   = FieldName
	Vary          = alt(`\*`, ListRule(FieldName))
	MIMEVersion   = DIGIT + `+\.` + DIGIT + `+`
	Expect        = `100-continue`
	dispositionTy = Token
	// ContentDisposition follows RFC 6266.
	ContentDisposition = group(dispositionTy, group(OWS, `;`, OWS, Parameter), `*`)
)
