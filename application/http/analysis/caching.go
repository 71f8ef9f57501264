package analysis

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"http-inspector/application/http/header"
	"http-inspector/application/http/message"
	"http-inspector/application/http/note"
	"http-inspector/application/http/semantic"
)

const (
	// HeuristicFraction of the time since Last-Modified a cache may
	// treat as freshness lifetime.
	HeuristicFraction = 0.1
	// MaxClockSkew tolerated between the server's Date and the response time.
	MaxClockSkew = 5 * time.Second
)

// Cache-Control directives that must not repeat.
var knownDirectives = []string{
	"max-age", "no-store", "s-maxage", "public", "private",
	"pre-check", "post-check", "stale-while-revalidate", "stale-if-error",
}

// Statuses a cache may assign a heuristic lifetime to.
var heuristicStatuses = []uint{200, 203, 206, 300, 301, 410}

// Freshness summarizes what a cache may do with a response.
//
// Lifetime comes from Cache-Control or Expires when Explicit is set. Otherwise
// it is the heuristic lifetime derived from Last-Modified, with Heuristic set.
// Notes about serving stale responses only consider explicit freshness.
type Freshness struct {
	StoreShared  bool `json:"store_shared"`
	StorePrivate bool `json:"store_private"`

	// Ages and lifetimes are truncated to whole seconds.
	Age        time.Duration `json:"age"`
	CurrentAge time.Duration `json:"current_age"`
	Lifetime   time.Duration `json:"lifetime"`
	Explicit   bool          `json:"explicit"`
	Heuristic  bool          `json:"heuristic"`
	Fresh      bool          `json:"fresh"`
}

// CheckCaching examines the caching behaviour of resp, fetched with request.
// The response time is resp.Started.
func CheckCaching(request *semantic.Request, resp *message.Response, notes *note.Collector) Freshness {
	var f Freshness

	parsed := resp.Parsed
	cc := parsed.Directives("cache-control")
	start := resp.Started
	lm, hasLM := parsed.Date("last-modified")
	date, hasDate := parsed.Date("date")
	expires, hasExpires := parsed.Date("expires")
	_, hasETag := header.Get[header.ETag](parsed, "etag")

	if hasLM {
		served := start
		if hasDate {
			served = date
		}
		if lm.After(served) {
			notes.Add("header-last-modified", LMFuture)
		} else {
			notes.Add("header-last-modified", LMPresent,
				note.V("last_modified_string", relative(served.Sub(lm), "ago", "from now")))
		}
	}

	checkDirectiveNames(cc, notes)

	// Who can store this?
	if request.Method != "" && request.Method != semantic.MethodGet {
		notes.Add("method", MethodUncacheable, note.V("method", request.Method))
		return f
	}
	if cc.Has("no-store") {
		notes.Add("header-cache-control", NoStore)
		return f
	}

	switch {
	case cc.Has("private"):
		f.StorePrivate = true
		notes.Add("header-cache-control", PrivateCC)
	case request.HasHeader("Authorization") && !cc.Has("public"):
		f.StorePrivate = true
		notes.Add("header-cache-control", PrivateAuth)
	default:
		f.StoreShared, f.StorePrivate = true, true
		notes.Add("header-cache-control", Storable)
	}

	if cc.Has("no-cache") {
		if !hasLM && !hasETag {
			notes.Add("header-cache-control", NoCacheNoValidator)
		} else {
			notes.Add("header-cache-control", NoCache)
		}
		return f
	}

	checkPrePostCheck(cc, notes)

	vary := parsed.Strings("vary")
	if slices.Contains(vary, "*") {
		notes.Add("header-vary", VaryAsterisk)
		return f
	}
	if len(vary) > 3 {
		notes.Add("header-vary", VaryComplex, note.V("vary_count", len(vary)))
	} else {
		if slices.Contains(vary, "user-agent") {
			notes.Add("header-vary", VaryUserAgent)
		}
		if slices.Contains(vary, "host") {
			notes.Add("header-vary", VaryHost)
		}
	}

	age, _ := header.Get[int64](parsed, "age")
	f.Age = time.Duration(age) * time.Second

	var apparent time.Duration
	if hasDate {
		apparent = max(0, start.Sub(date).Truncate(time.Second))
	}
	f.CurrentAge = max(apparent, f.Age)

	if age >= 1 {
		notes.Add("header-age header-date", CurrentAge, note.V("age", relative(f.Age, "", "")))
	}

	if !hasDate {
		notes.Add("", DateClockless)
		if hasExpires || hasLM {
			notes.Add("header-expires header-last-modified", DateClocklessBadHdr)
		}
	} else {
		skew := date.Sub(start).Truncate(time.Second) + f.Age
		switch {
		case f.Age > MaxClockSkew && MaxClockSkew > f.CurrentAge-skew:
			notes.Add("header-date header-age", AgePenalty)
		case skew > MaxClockSkew || skew < -MaxClockSkew:
			notes.Add("header-date", DateIncorrect,
				note.V("clock_skew_string", relative(skew, "ahead", "behind")))
		default:
			notes.Add("header-date", DateCorrect)
		}
	}

	subjects := []string{"header-date"}
	fromCC := false
	if lifetime, ok := cc.Seconds("s-maxage"); ok {
		f.Lifetime, f.Explicit, fromCC = lifetime, true, true
		subjects = append(subjects, "header-cache-control")
	} else if lifetime, ok := cc.Seconds("max-age"); ok {
		f.Lifetime, f.Explicit, fromCC = lifetime, true, true
		subjects = append(subjects, "header-cache-control")
	} else if hasExpires || hasField(resp.Headers, "expires") {
		// An Expires value that didn't parse means already expired.
		f.Explicit = true
		subjects = append(subjects, "header-expires")
		if hasExpires {
			base := start
			if hasDate {
				base = date
			}
			f.Lifetime = expires.Sub(base).Truncate(time.Second)
		}
	}

	left := f.Lifetime - f.CurrentAge
	f.Fresh = left > 0

	vars := []note.Var{
		note.V("freshness_lifetime", relative(f.Lifetime, "", "")),
		note.V("freshness_left", relative(left, "", "")),
		note.V("current_age", relative(f.CurrentAge, "", "")),
	}
	subject := strings.Join(subjects, " ")

	switch {
	case f.Explicit && f.Fresh:
		notes.Add(subject, FreshnessFresh, vars...)
	case f.Explicit && fromCC && f.Age > f.Lifetime:
		notes.Add(subject, FreshnessStaleCache, vars...)
	case f.Explicit:
		notes.Add(subject, FreshnessStaleAlready, vars...)
	case slices.Contains(heuristicStatuses, resp.StatusCode):
		var heuristic []note.Var
		if hasLM {
			served := start
			if hasDate {
				served = date
			}
			lifetime := max(0, time.Duration(float64(served.Sub(lm))*HeuristicFraction).Truncate(time.Second))
			f.Lifetime, f.Heuristic = lifetime, true
			f.Fresh = lifetime > f.CurrentAge
			heuristic = append(heuristic, note.V("heuristic_lifetime", relative(lifetime, "", "")))
		}
		notes.Add("header-last-modified", FreshnessHeuristic, heuristic...)
	default:
		notes.Add("", FreshnessNone)
	}

	// Can stale responses be served?
	switch {
	case cc.Has("must-revalidate"):
		servable(f, notes, FreshMustRevalidate, StaleMustRevalidate)
	case cc.Has("proxy-revalidate") || cc.Has("s-maxage"):
		servable(f, notes, FreshProxyRevalidate, StaleProxyRevalidate)
	default:
		servable(f, notes, FreshServable, StaleServable)
	}

	if cc.Has("public") {
		notes.Add("header-cache-control", Public)
	}

	return f
}

func servable(f Freshness, notes *note.Collector, fresh, stale note.Template) {
	switch {
	case !f.Explicit:
	case f.Fresh:
		notes.Add("header-cache-control", fresh)
	default:
		notes.Add("header-cache-control", stale)
	}
}

// checkDirectiveNames flags miscapitalised and repeated directives.
// Each distinct spelling is reported once.
func checkDirectiveNames(cc header.Directives, notes *note.Collector) {
	seen := make(map[string]bool, len(cc))
	for _, d := range cc {
		if seen[d.Name] {
			continue
		}
		seen[d.Name] = true

		lower := strings.ToLower(d.Name)
		if !slices.Contains(knownDirectives, lower) {
			continue
		}
		if d.Name != lower {
			notes.Add("header-cache-control", CCMiscap, note.V("cc", d.Name), note.V("cc_lower", lower))
		}

		count := 0
		for _, other := range cc {
			if other.Name == d.Name {
				count++
			}
		}
		if count > 1 {
			notes.Add("header-cache-control", CCDup, note.V("cc", d.Name))
		}
	}
}

// checkPrePostCheck looks at the Internet Explorer extensions.
func checkPrePostCheck(cc header.Directives, notes *note.Collector) {
	pre, hasPre := cc.Get("pre-check")
	post, hasPost := cc.Get("post-check")
	if !hasPre && !hasPost {
		return
	}
	if !hasPre || !hasPost {
		notes.Add("header-cache-control", CheckSingle)
		return
	}

	preCheck, preErr := strconv.Atoi(pre.Value)
	postCheck, postErr := strconv.Atoi(post.Value)
	if preErr != nil || postErr != nil {
		notes.Add("header-cache-control", CheckNotInteger)
		return
	}

	switch {
	case preCheck == 0 && postCheck == 0:
		notes.Add("header-cache-control", CheckAllZero)
	case postCheck > preCheck:
		notes.Add("header-cache-control", CheckPostBigger)
	case postCheck == 0:
		notes.Add("header-cache-control", CheckPostZero)
	default:
		notes.Add("header-cache-control", CheckPostPre,
			note.V("pre_check", preCheck), note.V("post_check", postCheck))
	}
}

// relative renders d in words. past and future are appended for
// positive and negative durations.
func relative(d time.Duration, past, future string) string {
	sign := past
	if d < 0 {
		d, sign = -d, future
	}

	secs := int64(d.Round(time.Second) / time.Second)
	if secs == 0 {
		if past == "" {
			return "0 sec"
		}
		return "now"
	}

	units := []struct {
		name string
		size int64
	}{
		{"year", 365 * 24 * 3600},
		{"day", 24 * 3600},
		{"hr", 3600},
		{"min", 60},
		{"sec", 1},
	}

	parts := make([]string, 0, 2)
	for _, u := range units {
		n := secs / u.size
		secs %= u.size
		if n == 0 {
			continue
		}
		name := u.name
		if n > 1 && (name == "year" || name == "day") {
			name += "s"
		}
		parts = append(parts, fmt.Sprintf("%d %s", n, name))
		if len(parts) == 2 {
			break
		}
	}

	out := strings.Join(parts, " ")
	if sign != "" {
		out += " " + sign
	}
	return out
}

func hasField(fields []header.Field, name string) bool {
	for _, f := range fields {
		if strings.EqualFold(f.Name, name) {
			return true
		}
	}
	return false
}
