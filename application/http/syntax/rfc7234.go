package syntax

// Caching.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc7234#appendix-C
var (
	DeltaSeconds   = DIGIT + `+`
	Age            = DeltaSeconds
	CacheDirective = group(Token, group(`=`, alt(Token, QuotedString)), `?`)
	CacheControl   = ListRule(CacheDirective)
	Expires        = HTTPDate

	PragmaDirective = alt(`no-cache`, CacheDirective)
	Pragma          = ListRule(PragmaDirective)

	warnAgent    = alt(group(Host, group(`:`, Port), `?`), Token)
	WarningValue = group(DIGIT+`{3}`, ` `, warnAgent, ` `, QuotedString, group(` "`, HTTPDate, `"`), `?`)
	Warning      = ListRule(WarningValue)
)
