package syntax

// Conditional requests.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc7232#appendix-C
var (
	weak         = `W/`
	etagc        = alt(`!`, `[\x23-\x7E]`, ObsText)
	OpaqueTag    = group(DQUOTE, etagc, `*`, DQUOTE)
	EntityTag    = group(group(weak), `?`, OpaqueTag)
	ETag         = EntityTag
	IfNoneMatch  = alt(`\*`, ListRule(EntityTag))
	LastModified = HTTPDate
)
