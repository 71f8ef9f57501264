package syntax

// ContentMD5 is the base64 encoding of a 128 bit digest.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc1864
const ContentMD5 = `[A-Za-z0-9+/]{22}==`
