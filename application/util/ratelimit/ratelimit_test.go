package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/suite"
)

type LimiterTestSuite struct {
	suite.Suite

	clock   *clock.Mock
	limiter *Limiter
}

func TestLimiterTestSuite(t *testing.T) {
	suite.Run(t, new(LimiterTestSuite))
}

func (s *LimiterTestSuite) SetupTest() {
	s.clock = clock.NewMock()
	s.limiter = New(s.clock)
	s.limiter.Configure("origin", 2, time.Minute)
}

func (s *LimiterTestSuite) TestLimitPerDiscriminator() {
	s.NoError(s.limiter.Increment("origin", "a.test"))
	s.NoError(s.limiter.Increment("origin", "a.test"))
	s.ErrorIs(s.limiter.Increment("origin", "a.test"), ErrViolation)

	// Other discriminators have their own count.
	s.NoError(s.limiter.Increment("origin", "b.test"))
}

func (s *LimiterTestSuite) TestPeriodResetsCounts() {
	testcases := []struct {
		desc    string
		advance time.Duration
		wantErr bool
	}{
		{desc: "same period", advance: 59 * time.Second, wantErr: true},
		{desc: "next period", advance: time.Minute},
		{desc: "several periods later", advance: 5*time.Minute + time.Second},
	}

	for _, tc := range testcases {
		s.Run(tc.desc, func() {
			s.SetupTest()
			s.Require().NoError(s.limiter.Increment("origin", "a.test"))
			s.Require().NoError(s.limiter.Increment("origin", "a.test"))

			s.clock.Add(tc.advance)

			err := s.limiter.Increment("origin", "a.test")
			if tc.wantErr {
				s.ErrorIs(err, ErrViolation)
				return
			}
			s.NoError(err)
		})
	}
}

func (s *LimiterTestSuite) TestUnconfiguredMetric() {
	for range 10 {
		s.NoError(s.limiter.Increment("unknown", "a.test"))
	}
}

func (s *LimiterTestSuite) TestConfigureIsIdempotent() {
	s.limiter.Configure("origin", 100, time.Hour)

	s.NoError(s.limiter.Increment("origin", "a.test"))
	s.NoError(s.limiter.Increment("origin", "a.test"))
	s.ErrorIs(s.limiter.Increment("origin", "a.test"), ErrViolation)
}

func (s *LimiterTestSuite) TestConcurrentIncrements() {
	s.limiter.Configure("burst", 50, time.Minute)

	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		violations int
	)
	for range 80 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.limiter.Increment("burst", "a.test"); err != nil {
				mu.Lock()
				violations++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	s.Equal(30, violations)
}
