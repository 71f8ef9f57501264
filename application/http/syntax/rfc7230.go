package syntax

// Message syntax and routing.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc7230#appendix-B
var (
	OWS = `[ \t]*`
	BWS = OWS
	RWS = `[ \t]+`

	ObsText      = `[\x{80}-\x{FF}]`
	TChar        = "[!#$%&'*+\\-.^_`|~0-9A-Za-z]"
	Token        = TChar + `+`
	qdtext       = `[\t !\x23-\x5B\x5D-\x7E\x{80}-\x{FF}]`
	QuotedPair   = group(`\\`, alt(`[\t \x21-\x7E]`, ObsText))
	QuotedString = group(`"`, alt(qdtext, QuotedPair), `*"`)
	ctext        = `[\t \x21-\x27\x2A-\x5B\x5D-\x7E\x{80}-\x{FF}]`
	Comment      = group(`\(`, alt(ctext, QuotedPair), `*\)`)

	FieldName  = Token
	FieldVChar = alt(VCHAR, ObsText)

	ContentLength = DIGIT + `+`

	transferParameter = group(Token, BWS, `=`, BWS, alt(Token, QuotedString))
	transferExtension = group(Token, group(OWS, `;`, OWS, transferParameter), `*`)
	TransferCoding    = alt(`chunked`, `compress`, `deflate`, `gzip`, transferExtension)
	TransferEncoding  = ListRule(TransferCoding)

	ConnectionOption = Token
	Connection       = ListRule(ConnectionOption)
	Trailer          = ListRule(FieldName)

	Protocol = group(Token, group(`/`, Token), `?`)
	Upgrade  = ListRule(Protocol)

	receivedProtocol = group(group(Token, `/`), `?`, Token)
	receivedBy       = alt(group(Host, group(`:`, Port), `?`), Token)
	ViaElement       = group(receivedProtocol, RWS, receivedBy, group(RWS, Comment), `?`)
	Via              = ListRule(ViaElement)

	HTTPVersion = `HTTP/` + DIGIT + `\.` + DIGIT
	StatusCode  = DIGIT + `{3}`
	// ReasonPhrase may be empty.
	ReasonPhrase = alt(`[\t ]`, VCHAR, ObsText) + `*`
)
