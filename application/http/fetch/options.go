package fetch

import (
	"time"

	"github.com/pkg/errors"
)

type Options struct {
	// ConnectTimeout bounds each dial. Expiry takes the connect error path.
	ConnectTimeout time.Duration
	// RetryLimit is how many times a GET or HEAD is reissued on a fresh
	// connection when no response byte was received.
	RetryLimit uint
	// ReadBufferSize is the size of a single connection read.
	ReadBufferSize uint
	// UserAgent is sent when the request has no User-Agent field.
	UserAgent string
	// RateLimitMetric is the limiter metric consulted with the target host.
	RateLimitMetric string
}

func DefaultOptions() Options {
	return Options{
		ConnectTimeout:  10 * time.Second,
		RetryLimit:      2,
		ReadBufferSize:  16 * 1024,
		RateLimitMetric: "origin",
	}
}

func (o Options) validate() error {
	if o.ConnectTimeout <= 0 {
		return errors.Errorf("connect timeout must be positive: %s", o.ConnectTimeout)
	}
	if o.ReadBufferSize == 0 {
		return errors.New("read buffer size must be positive")
	}
	return nil
}
