// Package config loads the inspector configuration from TOML.
package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"http-inspector/application/http/analysis"
	"http-inspector/application/http/fetch"
	"http-inspector/application/util/ratelimit"

	"github.com/BurntSushi/toml"
	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
)

const (
	MaxRetryLimit     = 10
	MaxReadBufferSize = 1 << 20
)

type Config struct {
	Fetch     Fetch
	Checks    analysis.Options
	RateLimit RateLimit
	LogLevel  slog.Level
}

type Fetch struct {
	ConnectTimeout time.Duration
	RetryLimit     uint
	ReadBufferSize uint
	UserAgent      string
}

// RateLimit bounds exchanges per origin host. A zero Limit disables it.
type RateLimit struct {
	Limit  uint
	Period time.Duration
}

func Default() Config {
	opts := fetch.DefaultOptions()
	return Config{
		Fetch: Fetch{
			ConnectTimeout: opts.ConnectTimeout,
			RetryLimit:     opts.RetryLimit,
			ReadBufferSize: opts.ReadBufferSize,
			UserAgent:      "http-inspector/1.0",
		},
		Checks:    analysis.DefaultOptions(),
		RateLimit: RateLimit{Period: time.Second},
		LogLevel:  slog.LevelWarn,
	}
}

type fileConfig struct {
	Fetch struct {
		ConnectTimeout string `toml:"connect_timeout"`
		RetryLimit     uint   `toml:"retry_limit"`
		ReadBufferSize uint   `toml:"read_buffer_size"`
		UserAgent      string `toml:"user_agent"`
	} `toml:"fetch"`

	Checks struct {
		ExtractLinks bool `toml:"extract_links"`
		ETagValidate bool `toml:"etag_validate"`
		LMValidate   bool `toml:"lm_validate"`
		Conneg       bool `toml:"conneg"`
		Range        bool `toml:"range"`
	} `toml:"checks"`

	RateLimit struct {
		Limit  uint   `toml:"limit"`
		Period string `toml:"period"`
	} `toml:"rate_limit"`

	Log struct {
		Level string `toml:"level"`
	} `toml:"log"`
}

// Load reads the file at path over the defaults. An empty path
// yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "reading config")
	}
	return Parse(string(data))
}

// Parse decodes a TOML document over the defaults and validates the result.
// Unknown keys are an error.
func Parse(data string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.Decode(data, &raw)
	if err != nil {
		return Config{}, errors.Wrap(err, "decoding config")
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.Errorf("unknown config key %q", undecoded[0].String())
	}

	if meta.IsDefined("fetch", "connect_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Fetch.ConnectTimeout))
		if err != nil {
			return Config{}, errors.Wrap(err, "parsing fetch.connect_timeout")
		}
		cfg.Fetch.ConnectTimeout = d
	}
	if meta.IsDefined("fetch", "retry_limit") {
		cfg.Fetch.RetryLimit = raw.Fetch.RetryLimit
	}
	if meta.IsDefined("fetch", "read_buffer_size") {
		cfg.Fetch.ReadBufferSize = raw.Fetch.ReadBufferSize
	}
	if meta.IsDefined("fetch", "user_agent") {
		cfg.Fetch.UserAgent = strings.TrimSpace(raw.Fetch.UserAgent)
	}

	checks := []struct {
		key    string
		target *bool
		value  bool
	}{
		{"extract_links", &cfg.Checks.ExtractLinks, raw.Checks.ExtractLinks},
		{"etag_validate", &cfg.Checks.ETagValidate, raw.Checks.ETagValidate},
		{"lm_validate", &cfg.Checks.LMValidate, raw.Checks.LMValidate},
		{"conneg", &cfg.Checks.Conneg, raw.Checks.Conneg},
		{"range", &cfg.Checks.Range, raw.Checks.Range},
	}
	for _, c := range checks {
		if meta.IsDefined("checks", c.key) {
			*c.target = c.value
		}
	}

	if meta.IsDefined("rate_limit", "limit") {
		cfg.RateLimit.Limit = raw.RateLimit.Limit
	}
	if meta.IsDefined("rate_limit", "period") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.RateLimit.Period))
		if err != nil {
			return Config{}, errors.Wrap(err, "parsing rate_limit.period")
		}
		cfg.RateLimit.Period = d
	}

	if meta.IsDefined("log", "level") {
		if err := cfg.LogLevel.UnmarshalText([]byte(strings.TrimSpace(raw.Log.Level))); err != nil {
			return Config{}, errors.Wrap(err, "parsing log.level")
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Fetch.ConnectTimeout <= 0 {
		return errors.Errorf("fetch.connect_timeout must be positive: %s", c.Fetch.ConnectTimeout)
	}
	if c.Fetch.RetryLimit > MaxRetryLimit {
		return errors.Errorf("fetch.retry_limit must be at most %d: %d", MaxRetryLimit, c.Fetch.RetryLimit)
	}
	if c.Fetch.ReadBufferSize == 0 || c.Fetch.ReadBufferSize > MaxReadBufferSize {
		return errors.Errorf("fetch.read_buffer_size must be in 1..%d: %d", MaxReadBufferSize, c.Fetch.ReadBufferSize)
	}
	if strings.ContainsAny(c.Fetch.UserAgent, "\r\n\x00") {
		return errors.Errorf("fetch.user_agent must be a single line: %q", c.Fetch.UserAgent)
	}
	if c.RateLimit.Limit > 0 && c.RateLimit.Period <= 0 {
		return errors.Errorf("rate_limit.period must be positive: %s", c.RateLimit.Period)
	}
	return nil
}

func (c Config) FetchOptions() fetch.Options {
	opts := fetch.DefaultOptions()
	opts.ConnectTimeout = c.Fetch.ConnectTimeout
	opts.RetryLimit = c.Fetch.RetryLimit
	opts.ReadBufferSize = c.Fetch.ReadBufferSize
	opts.UserAgent = c.Fetch.UserAgent
	return opts
}

// Limiter returns the origin rate limiter, or nil when rate limiting is off.
func (c Config) Limiter(clock clock.Clock) *ratelimit.Limiter {
	if c.RateLimit.Limit == 0 {
		return nil
	}
	l := ratelimit.New(clock)
	l.Configure(c.FetchOptions().RateLimitMetric, c.RateLimit.Limit, c.RateLimit.Period)
	return l
}
