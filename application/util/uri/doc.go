// Package uri parses and resolves URI references.
//
// Reference:
//
// - https://datatracker.ietf.org/doc/html/rfc3986
//
// - https://datatracker.ietf.org/doc/html/rfc5891 (host names)
package uri
