// Package http frames HTTP/1.x messages on the client side:
// it encodes requests and incrementally parses response heads.
//
// Reference:
//
// - https://datatracker.ietf.org/doc/html/rfc9110
//
// - https://datatracker.ietf.org/doc/html/rfc9112
package http
