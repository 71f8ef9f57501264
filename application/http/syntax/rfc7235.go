package syntax

// Authentication.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc7235#appendix-C
var (
	AuthParam  = group(Token, BWS, `=`, BWS, alt(Token, QuotedString))
	AuthScheme = Token
	Token68    = `[A-Za-z0-9\-._~+/]+=*`
	Challenge  = group(
		AuthScheme,
		group(` +`, alt(Token68, group(AuthParam, group(OWS, `,`, OWS, AuthParam), `*`))), `?`,
	)
	Credentials     = Challenge
	WWWAuthenticate = ListRule(Challenge)
)
