// Package header validates and parses header fields against a registry
// of per-field grammars.
package header

import (
	"regexp"
	"strings"

	"http-inspector/application/http"
	"http-inspector/application/http/note"

	"github.com/pkg/errors"
)

// Field is a header field after encoding normalization.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Parsed maps lowercase field names to their joined, typed values.
// Only successful parses are stored.
type Parsed map[string]any

// Get returns the parsed value of name with the expected type.
func Get[T any](p Parsed, name string) (T, bool) {
	v, ok := p[strings.ToLower(name)]
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

func (p Parsed) Has(name string) bool {
	_, ok := p[strings.ToLower(name)]
	return ok
}

// Context tells entries about the message their fields belong to.
type Context struct {
	Request    bool
	Method     string
	StatusCode uint
	// StartLineLen counts toward the header block size.
	StartLineLen int
}

// ResponseContext builds the context of a response head.
func ResponseContext(line http.StatusLine) Context {
	return Context{
		StatusCode:   line.StatusCode,
		StartLineLen: len(line.Version.Text()) + len(line.ReasonPhrase) + 5,
	}
}

// RequestContext builds the context of a request head.
func RequestContext(method, uri string, version http.Version) Context {
	return Context{
		Request:      true,
		Method:       method,
		StartLineLen: len(version.Text()) + len(method) + len(uri) + 2,
	}
}

type (
	// ParseFunc turns one field value into a typed value.
	// It returns false to drop the value, adding its own note when useful.
	ParseFunc func(value string, add note.AddFunc) (any, bool)
	// JoinFunc folds the parsed values of every instance of a field.
	JoinFunc func(values []any, add note.AddFunc) (any, bool)
	// EvaluateFunc checks a joined value against the message.
	EvaluateFunc func(value any, ctx Context, add note.AddFunc)
)

// Entry describes how one header field is checked and parsed.
type Entry struct {
	// Name is the canonical spelling.
	Name string
	// Grammar is matched against every (sub-)value. Empty skips the check.
	Grammar string
	// List fields are split on commas outside quoted strings before parsing.
	List       bool
	Deprecated bool
	Request    bool
	Response   bool

	Parse ParseFunc
	// Join defaults to the last value for single fields
	// and to the whole slice for list fields.
	Join     JoinFunc
	Evaluate EvaluateFunc

	grammar *regexp.Regexp
}

func (e *Entry) join(values []any, add note.AddFunc) (any, bool) {
	if e.Join != nil {
		return e.Join(values, add)
	}
	if e.List {
		return values, true
	}
	return values[len(values)-1], true
}

var (
	ErrEntryNameMissing  = errors.New("entry name is missing")
	ErrEntryParseMissing = errors.New("entry parse func is missing")
	ErrEntryExists       = errors.New("entry already registered")
)

// Registry maps lowercase field names to entries.
// It must not be modified once pipelines use it.
type Registry struct {
	entries map[string]*Entry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Entry)}
}

// Register adds e, compiling its grammar.
func (r *Registry) Register(e Entry) error {
	if e.Name == "" {
		return ErrEntryNameMissing
	}
	if e.Parse == nil {
		return errors.Wrap(ErrEntryParseMissing, e.Name)
	}

	key := strings.ToLower(e.Name)
	if _, ok := r.entries[key]; ok {
		return errors.Wrap(ErrEntryExists, e.Name)
	}

	if e.Grammar != "" {
		compiled, err := regexp.Compile(`^[ \t]*(?:` + e.Grammar + `)[ \t]*$`)
		if err != nil {
			return errors.Wrapf(err, "compiling grammar of %s", e.Name)
		}
		e.grammar = compiled
	}

	r.entries[key] = &e
	return nil
}

// Lookup finds the entry for name, ignoring case.
func (r *Registry) Lookup(name string) (*Entry, bool) {
	e, ok := r.entries[strings.ToLower(name)]
	return e, ok
}

func (r *Registry) Len() int { return len(r.entries) }

// accepts reports whether the grammar of e matches value.
func (e *Entry) accepts(value string) bool {
	return e.grammar == nil || e.grammar.MatchString(value)
}
