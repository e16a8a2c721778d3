package github

import (
	"context"
	"sync"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/time/rate"
)

const (
	// authenticatedQuota is GitHub's hourly quota for token-authenticated calls.
	authenticatedQuota = 5000

	// proactiveRate / proactiveBurst throttle outbound calls before GitHub
	// has to; file-content fetches are bursty and one job can issue dozens.
	proactiveRate  = 10
	proactiveBurst = 10

	// minBuffer is the remaining-quota floor below which we park until reset.
	minBuffer = 50
)

// RateLimiter combines a proactive token bucket with reactive tracking of the
// quota GitHub reports on every response.
type RateLimiter struct {
	mu        sync.Mutex
	remaining int
	resetAt   time.Time
	bucket    *rate.Limiter
}

// NewRateLimiter returns a limiter that assumes a full quota until the first
// response says otherwise.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		remaining: authenticatedQuota,
		bucket:    rate.NewLimiter(rate.Limit(proactiveRate), proactiveBurst),
	}
}

// Wait blocks until it is safe to issue the next request. When the reported
// quota is nearly exhausted it parks until the reset time.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.bucket.Wait(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	remaining := r.remaining
	resetAt := r.resetAt
	r.mu.Unlock()

	if remaining < minBuffer && time.Now().Before(resetAt) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(resetAt)):
		}
	}
	return nil
}

// Update records the quota state carried on a go-github response.
func (r *RateLimiter) Update(resp *gh.Response) {
	if resp == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.remaining = resp.Rate.Remaining
	r.resetAt = resp.Rate.Reset.Time
}

// Remaining returns the last reported remaining quota.
func (r *RateLimiter) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remaining
}
