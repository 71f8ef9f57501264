package header

import (
	"strconv"
	"strings"
	"time"
)

// ETag is a parsed entity tag.
type ETag struct {
	Weak bool   `json:"weak"`
	Tag  string `json:"tag"`
}

// Directive is one Cache-Control, Pragma or Keep-Alive member.
// Name keeps the sender's case.
type Directive struct {
	Name     string `json:"name"`
	Value    string `json:"value,omitempty"`
	HasValue bool   `json:"has_value"`
}

// Directives keep arrival order, duplicates included.
type Directives []Directive

// Get returns the last directive called name, ignoring case.
func (ds Directives) Get(name string) (Directive, bool) {
	for idx := len(ds) - 1; idx >= 0; idx-- {
		if strings.EqualFold(ds[idx].Name, name) {
			return ds[idx], true
		}
	}
	return Directive{}, false
}

func (ds Directives) Has(name string) bool {
	_, ok := ds.Get(name)
	return ok
}

// Seconds returns the delta-seconds value of name.
func (ds Directives) Seconds(name string) (time.Duration, bool) {
	d, ok := ds.Get(name)
	if !ok || !d.HasValue {
		return 0, false
	}
	n, err := strconv.ParseInt(d.Value, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return time.Duration(n) * time.Second, true
}

// Count returns how many directives are called name, ignoring case.
func (ds Directives) Count(name string) int {
	count := 0
	for _, d := range ds {
		if strings.EqualFold(d.Name, name) {
			count++
		}
	}
	return count
}

// MediaType is a Content-Type value.
type MediaType struct {
	Type   string `json:"type"`
	Params Params `json:"params,omitempty"`
}

// Disposition is a Content-Disposition value.
type Disposition struct {
	Type   string `json:"type"`
	Params Params `json:"params,omitempty"`
}

// ContentRange is a Content-Range value.
// Unknown lengths and unsatisfied ranges use -1.
type ContentRange struct {
	Unit     string `json:"unit"`
	First    int64  `json:"first"`
	Last     int64  `json:"last"`
	Complete int64  `json:"complete"`
	Raw      string `json:"raw"`
}

// Satisfied reports whether the range carries positions.
func (cr ContentRange) Satisfied() bool { return cr.First >= 0 }

// Length is the number of bytes the range covers.
func (cr ContentRange) Length() int64 {
	if !cr.Satisfied() {
		return 0
	}
	return cr.Last - cr.First + 1
}

// RetryAfter holds either a date or a delay.
type RetryAfter struct {
	Date  time.Time     `json:"date,omitempty"`
	Delay time.Duration `json:"delay,omitempty"`
}

// XSSProtection is an X-XSS-Protection value.
type XSSProtection struct {
	Enabled bool   `json:"enabled"`
	Params  Params `json:"params,omitempty"`
}
