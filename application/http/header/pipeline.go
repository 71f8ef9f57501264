package header

import (
	"strconv"
	"strings"

	"http-inspector/application/http"
	"http-inspector/application/http/note"
	"http-inspector/application/util/rule"

	"golang.org/x/text/encoding/charmap"
)

const (
	// MaxFieldSize is the advisory limit for one field line.
	MaxFieldSize = 4 * 1024
	// MaxBlockSize is the advisory limit for the whole header block.
	MaxBlockSize = 8 * 1000
)

// Result is the outcome of processing a header block.
type Result struct {
	// Clean holds one entry per raw field, in order.
	Clean  []Field
	Parsed Parsed
}

// Pipeline turns raw fields into clean fields, parsed values and notes.
// It keeps no state between calls.
type Pipeline struct {
	registry *Registry
}

func NewPipeline(registry *Registry) *Pipeline {
	return &Pipeline{registry: registry}
}

type accumulated struct {
	entry     *Entry
	name      string
	instances int
	values    []any
}

// Process runs every field through its registry entry.
// Problems never stop processing; they end up as notes.
func (p *Pipeline) Process(ctx Context, fields []http.Field, notes *note.Collector) Result {
	result := Result{
		Clean:  make([]Field, 0, len(fields)),
		Parsed: make(Parsed),
	}

	blockSize := ctx.StartLineLen
	order := make([]string, 0)
	acc := make(map[string]*accumulated)

	for idx, raw := range fields {
		subject := "offset-" + strconv.Itoa(idx+1)

		size := len(raw.Name) + len(raw.Value)
		blockSize += size

		name, nameOK := decodeName(raw.Name)
		value, valueOK := decodeValue(raw.Value)
		if size > MaxFieldSize {
			notes.Add(subject, HeaderTooLarge, note.V("header_name", name), note.V("header_size", size))
		}
		if !nameOK {
			notes.Add(subject, HeaderNameEncoding, note.V("header_name", name))
		}
		if !valueOK {
			notes.Add(subject, HeaderValueEncoding, note.V("header_name", name))
		}

		result.Clean = append(result.Clean, Field{Name: name, Value: value})

		name = strings.TrimFunc(name, rule.IsWhitespace)
		if !rule.IsValidToken(name) {
			notes.Add(subject, FieldNameBadSyntax, note.V("field_name", name))
			continue
		}

		key := strings.ToLower(name)
		entry, ok := p.registry.Lookup(key)
		if !ok {
			continue
		}

		add := bindField(notes, key, name)
		if ctx.Request && !entry.Request {
			add(ResponseHdrInReq)
			continue
		}
		if !ctx.Request && !entry.Response {
			add(RequestHdrInResp)
			continue
		}
		if entry.Deprecated {
			add(HeaderDeprecated)
		}

		a, seen := acc[key]
		if !seen {
			a = &accumulated{entry: entry, name: name, values: make([]any, 0)}
			acc[key] = a
			order = append(order, key)
		}
		a.instances++

		values := []string{strings.TrimFunc(value, rule.IsWhitespace)}
		if entry.List {
			values = rule.SplitList(value)
		}

		for _, v := range values {
			if !entry.accepts(v) {
				add(BadSyntax)
			}
			if parsed, ok := entry.Parse(v, add); ok {
				a.values = append(a.values, parsed)
			}
		}
	}

	for _, key := range order {
		a := acc[key]
		if len(a.values) == 0 {
			continue
		}

		add := bindField(notes, key, a.name)
		if !a.entry.List && a.instances > 1 {
			add(SingleHeaderRepeat)
		}

		joined, ok := a.entry.join(a.values, add)
		if !ok {
			continue
		}
		result.Parsed[key] = joined

		if a.entry.Evaluate != nil {
			a.entry.Evaluate(joined, ctx, add)
		}
	}

	if blockSize > MaxBlockSize {
		notes.Add("header", HeaderBlockTooLarge, note.V("header_block_size", blockSize))
	}

	return result
}

// bindField reports on header-<key> and always sets field_name.
func bindField(notes *note.Collector, key, name string) note.AddFunc {
	subject := "header-" + key
	return func(t note.Template, vars ...note.Var) {
		notes.Add(subject, t, append([]note.Var{note.V("field_name", name)}, vars...)...)
	}
}

// decodeName drops non-ASCII bytes.
func decodeName(b []byte) (string, bool) {
	if rule.IsASCII(b) {
		return string(b), true
	}

	kept := make([]byte, 0, len(b))
	for _, c := range b {
		if c < 0x80 {
			kept = append(kept, c)
		}
	}
	return string(kept), false
}

// decodeValue falls back to ISO-8859-1 when the value is not ASCII.
func decodeValue(b []byte) (string, bool) {
	if rule.IsASCII(b) {
		return string(b), true
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "�"), false
	}
	return string(decoded), false
}
