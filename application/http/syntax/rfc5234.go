package syntax

// Core rules.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc5234#appendix-B.1
const (
	ALPHA  = `[A-Za-z]`
	BIT    = `[01]`
	CR     = `\x0D`
	LF     = `\x0A`
	CRLF   = `(?:\x0D\x0A)`
	CTL    = `[\x00-\x1F\x7F]`
	DIGIT  = `[0-9]`
	DQUOTE = `"`
	HEXDIG = `[0-9A-Fa-f]`
	HTAB   = `\x09`
	OCTET  = `[\x00-\xFF]`
	SP     = `\x20`
	VCHAR  = `[\x21-\x7E]`
	WSP    = `[ \t]`
)
