package github

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fumiya-kume/ccrefactor/pkg/clock"
)

// RateLimiter is a token bucket pacing content fetches against the API quota
type RateLimiter struct {
	clock      clock.Clock
	tokens     int
	maxTokens  int
	refillRate time.Duration
	lastRefill time.Time
	mutex      sync.Mutex
}

// NewRateLimiter allows maxRequests per window on the real clock
func NewRateLimiter(maxRequests int, window time.Duration) *RateLimiter {
	return NewRateLimiterWithClock(maxRequests, window, clock.NewRealClock())
}

// NewRateLimiterWithClock creates a rate limiter driven by clk
func NewRateLimiterWithClock(maxRequests int, window time.Duration, clk clock.Clock) *RateLimiter {
	if maxRequests < 1 {
		maxRequests = 1
	}
	return &RateLimiter{
		clock:      clk,
		tokens:     maxRequests,
		maxTokens:  maxRequests,
		refillRate: window / time.Duration(maxRequests),
		lastRefill: clk.Now(),
	}
}

// Wait blocks until a token is available or ctx is done
func (r *RateLimiter) Wait(ctx context.Context) error {
	for {
		if r.TryTakeToken() {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.clock.After(r.TimeUntilNextToken()):
		}
	}
}

// TryTakeToken takes a token without blocking
func (r *RateLimiter) TryTakeToken() bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.refill()
	if r.tokens > 0 {
		r.tokens--
		return true
	}
	return false
}

// AvailableTokens returns the number of requests that may start now
func (r *RateLimiter) AvailableTokens() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.refill()
	return r.tokens
}

// TimeUntilNextToken returns how long until a request may start
func (r *RateLimiter) TimeUntilNextToken() time.Duration {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.refill()
	if r.tokens > 0 {
		return 0
	}
	return r.refillRate - r.clock.Since(r.lastRefill)
}

// Reset refills the bucket
func (r *RateLimiter) Reset() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.tokens = r.maxTokens
	r.lastRefill = r.clock.Now()
}

func (r *RateLimiter) String() string {
	return fmt.Sprintf("RateLimiter{tokens: %d/%d, nextRefill: %v}",
		r.AvailableTokens(), r.maxTokens, r.TimeUntilNextToken())
}

// refill credits whole tokens for the time since the last refill; callers hold the mutex
func (r *RateLimiter) refill() {
	elapsed := r.clock.Since(r.lastRefill)
	tokensToAdd := int(elapsed / r.refillRate)
	if tokensToAdd <= 0 {
		return
	}

	r.tokens += tokensToAdd
	if r.tokens > r.maxTokens {
		r.tokens = r.maxTokens
	}
	r.lastRefill = r.lastRefill.Add(time.Duration(tokensToAdd) * r.refillRate)
	if r.tokens == r.maxTokens {
		r.lastRefill = r.clock.Now()
	}
}
