// Package syntax holds HTTP field grammars as RE2 regular expressions.
//
// The productions follow the collected ABNF of RFC 5234, 3986, 5646,
// 7230, 7231, 7232, 7233, 7234 and 7235. They are plain strings meant to be
// composed; use Match or Compile to anchor them.
package syntax
