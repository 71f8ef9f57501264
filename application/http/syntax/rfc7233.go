package syntax

// Range requests.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc7233#appendix-D
var (
	BytesUnit    = `bytes`
	RangeUnit    = alt(BytesUnit, Token)
	AcceptRanges = alt(ListRule(RangeUnit), `none`)

	byteRange        = group(DIGIT+`+`, `-`, DIGIT+`+`)
	byteRangeResp    = group(byteRange, `/`, alt(DIGIT+`+`, `\*`))
	unsatisfiedRange = group(`\*/`, DIGIT+`+`)
	byteContentRange = group(BytesUnit, ` `, alt(byteRangeResp, unsatisfiedRange))
	ContentRange     = alt(byteContentRange, group(Token, ` `, VCHAR, `*`))

	byteRangeSpec       = group(DIGIT+`+`, `-`, DIGIT+`*`)
	suffixByteRangeSpec = group(`-`, DIGIT+`+`)
	Range               = group(BytesUnit, `=`, ListRule(alt(byteRangeSpec, suffixByteRangeSpec)))
	IfRange             = alt(EntityTag, HTTPDate)
)
