package ratelimit

import (
	"sync"
	"time"
)

const (
	ActionLogin    = "login"
	ActionRegister = "register"
)

// TokenBucket refills refillRate tokens every refillTime, up to maxTokens.
type TokenBucket struct {
	tokens     int
	maxTokens  int
	refillRate int
	refillTime time.Duration
	lastRefill time.Time
	mutex      sync.Mutex
}

// NewTokenBucket creates a full bucket.
func NewTokenBucket(maxTokens, refillRate int, refillTime time.Duration, now time.Time) *TokenBucket {
	return &TokenBucket{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillRate: refillRate,
		refillTime: refillTime,
		lastRefill: now,
	}
}

// Allow consumes a token if one is available. When none is, it returns the
// wait until the next refill.
func (tb *TokenBucket) Allow(now time.Time) (bool, time.Duration) {
	tb.mutex.Lock()
	defer tb.mutex.Unlock()

	elapsed := now.Sub(tb.lastRefill)
	if refills := int(elapsed / tb.refillTime); refills > 0 {
		tb.tokens += refills * tb.refillRate
		if tb.tokens > tb.maxTokens {
			tb.tokens = tb.maxTokens
		}
		tb.lastRefill = tb.lastRefill.Add(time.Duration(refills) * tb.refillTime)
	}

	if tb.tokens > 0 {
		tb.tokens--
		return true, 0
	}

	return false, tb.lastRefill.Add(tb.refillTime).Sub(now)
}

// RateLimiter keeps one bucket per subject and action, e.g. per email for
// login attempts.
type RateLimiter struct {
	buckets map[string]*TokenBucket
	mutex   sync.Mutex
	now     func() time.Time
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		buckets: make(map[string]*TokenBucket),
		now:     time.Now,
	}
}

// WithClock replaces the time source, for tests.
func (rl *RateLimiter) WithClock(now func() time.Time) *RateLimiter {
	rl.now = now
	return rl
}

// Allow takes a token for subject and action, or reports how long to wait.
func (rl *RateLimiter) Allow(subject, action string) (bool, time.Duration) {
	key := subject + ":" + action
	now := rl.now()

	rl.mutex.Lock()
	bucket, exists := rl.buckets[key]
	if !exists {
		switch action {
		case ActionLogin:
			// 5 attempts, then one every 12 seconds
			bucket = NewTokenBucket(5, 1, 12*time.Second, now)
		case ActionRegister:
			bucket = NewTokenBucket(3, 1, time.Minute, now)
		default:
			bucket = NewTokenBucket(20, 1, 3*time.Second, now)
		}
		rl.buckets[key] = bucket
	}
	rl.mutex.Unlock()

	return bucket.Allow(now)
}

// Reset forgets a subject's bucket, e.g. after a successful login.
func (rl *RateLimiter) Reset(subject, action string) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()
	delete(rl.buckets, subject+":"+action)
}
