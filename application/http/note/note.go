// Package note holds the diagnostics produced while inspecting a response.
package note

import (
	"fmt"
	"strings"

	json "github.com/json-iterator/go"
)

type Category string

const (
	General            Category = "general"
	Caching            Category = "caching"
	Validation         Category = "validation"
	ContentNegotiation Category = "content-negotiation"
	Connection         Category = "connection"
	Range              Category = "range"
)

type Level string

const (
	Good    Level = "good"
	Info    Level = "info"
	Warning Level = "warning"
	Bad     Level = "bad"
)

// Template describes one kind of note.
// Summary may reference variables as {name}.
type Template struct {
	ID       string
	Category Category
	Level    Level
	Summary  string
}

type Var struct {
	Key   string
	Value string
}

// V builds a note variable. Value is formatted with fmt.Sprint.
func V(key string, value any) Var {
	return Var{Key: key, Value: fmt.Sprint(value)}
}

type Note struct {
	Subject  string            `json:"subject"`
	ID       string            `json:"id"`
	Category Category          `json:"category"`
	Level    Level             `json:"level"`
	Vars     map[string]string `json:"vars,omitempty"`

	summary string
}

// Summary renders the template summary with the note variables.
func (n Note) Summary() string {
	if len(n.Vars) == 0 {
		return n.summary
	}

	pairs := make([]string, 0, len(n.Vars)*2)
	for k, v := range n.Vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(n.summary)
}

func (n Note) String() string {
	return fmt.Sprintf("[%s] %s: %s", n.Level, n.Subject, n.Summary())
}

// MarshalJSON adds the rendered summary to the note fields.
func (n Note) MarshalJSON() ([]byte, error) {
	type fields Note
	return json.ConfigCompatibleWithStandardLibrary.Marshal(struct {
		fields
		Summary string `json:"summary"`
	}{fields(n), n.Summary()})
}
