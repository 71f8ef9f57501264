package header

import (
	"strings"
	"sync"
	"time"

	"http-inspector/application/http/note"
	"http-inspector/application/http/semantic"
	"http-inspector/application/http/syntax"
	"http-inspector/application/util/rule"
)

var defaultRegistry = sync.OnceValue(func() *Registry {
	r := NewRegistry()
	for _, group := range [][]Entry{
		messageEntries(),
		contentEntries(),
		cachingEntries(),
		responseEntries(),
	} {
		for _, e := range group {
			if err := r.Register(e); err != nil {
				panic(err)
			}
		}
	}
	return r
})

// DefaultRegistry returns the shared registry of known response fields.
func DefaultRegistry() *Registry { return defaultRegistry() }

var (
	httpDate = syntax.Compile(syntax.HTTPDate)
	obsDate  = syntax.Compile(syntax.ObsDate)
)

func parseString(value string, _ note.AddFunc) (any, bool) { return value, true }

func parseLower(value string, _ note.AddFunc) (any, bool) { return strings.ToLower(value), true }

// parseDate accepts any HTTP-date format, noting the obsolete ones.
func parseDate(value string, add note.AddFunc) (any, bool) {
	value = strings.TrimFunc(value, rule.IsWhitespace)
	if !httpDate.MatchString(value) {
		add(BadDateSyntax)
		return nil, false
	}

	t, _, err := semantic.ParseDate(value)
	if err != nil {
		add(BadDateSyntax)
		return nil, false
	}
	if obsDate.MatchString(value) {
		add(DateObsolete)
	}

	return t, true
}

// parseDirective splits name[=value], unquoting the value.
func parseDirective(value string, _ note.AddFunc) (any, bool) {
	name, val, found := strings.Cut(value, "=")
	d := Directive{Name: strings.TrimFunc(name, rule.IsWhitespace)}
	if d.Name == "" {
		return nil, false
	}
	if found {
		d.Value = rule.UnquoteString(strings.TrimFunc(val, rule.IsWhitespace))
		d.HasValue = true
	}
	return d, true
}

func joinStrings(values []any, _ note.AddFunc) (any, bool) {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, v.(string))
	}
	return out, true
}

// joinUnique keeps the first occurrence of each string.
func joinUnique(values []any, _ note.AddFunc) (any, bool) {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		s := v.(string)
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out, true
}

func joinDirectives(values []any, _ note.AddFunc) (any, bool) {
	out := make(Directives, 0, len(values))
	for _, v := range values {
		out = append(out, v.(Directive))
	}
	return out, true
}

// Typed accessors for the values analysis relies on.

func (p Parsed) Date(name string) (time.Time, bool) { return Get[time.Time](p, name) }

func (p Parsed) Strings(name string) []string {
	s, _ := Get[[]string](p, name)
	return s
}

func (p Parsed) Directives(name string) Directives {
	d, _ := Get[Directives](p, name)
	return d
}

func (p Parsed) Text(name string) (string, bool) { return Get[string](p, name) }
