package rule

import (
	"bytes"
	"strings"
)

// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-5.6.2-2
func IsTChar(c rune) bool {
	if IsAlpha(c) || IsDigit(c) {
		return true
	}

	switch c {
	case '!', '#', '$', '%', '&', '\'', '*', '+',
		'-', '.', '^', '_', '`', '|', '~':
		return true
	}

	return false
}

// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-5.6.2-2
func IsValidToken(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, c := range s {
		if !IsTChar(c) {
			return false
		}
	}

	return true
}

// IsQuoted reports whether token is wrapped with double quotes.
func IsQuoted(token []byte) bool {
	return len(token) >= 2 && token[0] == DQ && token[len(token)-1] == DQ
}

// Unquote unquotes token if it was quoted with double quotes.
// Quoted-pairs inside are un-escaped; an unquoted token is returned as is.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-5.6.4
func Unquote(token []byte) []byte {
	if !IsQuoted(token) {
		return bytes.Clone(token)
	}

	token = token[1 : len(token)-1]

	buf := bytes.NewBuffer(make([]byte, 0, len(token)))
	for idx := 0; idx < len(token); idx++ {
		c := token[idx]
		if c == '\\' && idx+1 < len(token) {
			idx++
			c = token[idx]
		}
		buf.WriteByte(c)
	}

	return buf.Bytes()
}

func UnquoteString(s string) string { return string(Unquote([]byte(s))) }

// SplitList splits a field value on commas that are not inside a quoted string.
// Members are trimmed and empty members are skipped.
// A value without any member still yields a single empty member.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-5.6.1
func SplitList(value string) []string {
	return splitOutsideQuotes(value, ',', true)
}

// SplitParams splits on delim outside quoted strings, keeping empty members.
func SplitParams(value string, delim byte) []string {
	return splitOutsideQuotes(value, delim, false)
}

func splitOutsideQuotes(value string, delim byte, skipEmpty bool) []string {
	members := make([]string, 0)
	b := new(strings.Builder)

	quoted, escaped := false, false
	flush := func() {
		member := strings.TrimFunc(b.String(), IsWhitespace)
		b.Reset()
		if member == "" && skipEmpty {
			return
		}
		members = append(members, member)
	}

	for idx := 0; idx < len(value); idx++ {
		c := value[idx]
		switch {
		case escaped:
			escaped = false
		case quoted && c == '\\':
			escaped = true
		case c == DQ:
			quoted = !quoted
		case c == delim && !quoted:
			flush()
			continue
		}
		b.WriteByte(c)
	}
	flush()

	if len(members) == 0 {
		members = append(members, "")
	}

	return members
}
