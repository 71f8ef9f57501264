// Package ratelimit counts events per metric and discriminator over fixed periods.
package ratelimit

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
)

var ErrViolation = errors.New("rate limit exceeded")

type metric struct {
	limit  uint
	period time.Duration

	windowStart time.Time
	counts      map[string]uint
}

// Limiter is safe for concurrent use.
type Limiter struct {
	clock   clock.Clock
	metrics map[string]*metric
	mu      sync.Mutex
}

func New(clock clock.Clock) *Limiter {
	return &Limiter{clock: clock, metrics: make(map[string]*metric)}
}

// Configure sets up a metric. Later calls for the same metric are ignored.
func (l *Limiter) Configure(name string, limit uint, period time.Duration) {
	if period <= 0 {
		panic("rate limit period must be positive")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.metrics[name]; ok {
		return
	}
	l.metrics[name] = &metric{
		limit:       limit,
		period:      period,
		windowStart: l.clock.Now(),
		counts:      make(map[string]uint),
	}
}

// Increment counts one event for discriminator. Unconfigured metrics
// are not counted. It returns ErrViolation once the count goes over
// the limit within the current period.
func (l *Limiter) Increment(name, discriminator string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, ok := l.metrics[name]
	if !ok {
		return nil
	}

	if elapsed := l.clock.Since(m.windowStart); elapsed >= m.period {
		m.windowStart = m.windowStart.Add(elapsed / m.period * m.period)
		m.counts = make(map[string]uint)
	}

	m.counts[discriminator]++
	if m.counts[discriminator] > m.limit {
		return errors.Wrapf(ErrViolation, "%s for %q: %d in %s", name, discriminator, m.counts[discriminator], m.period)
	}
	return nil
}
