package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"
)

// sweepThreshold bounds the table before expired windows are swept inline.
const sweepThreshold = 10000

type window struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter is a process-local fixed-window limiter. Counters live in
// memory only, so a restart resets every window; that is an accepted tradeoff
// for a single-process deployment. Horizontally scaled deployments should use
// RedisLimiter instead, which keeps the same algorithm in a shared store.
type MemoryLimiter struct {
	mu      sync.Mutex
	entries map[string]*window
	max     int
	window  time.Duration
	now     func() time.Time
}

// NewMemoryLimiter constructs an in-memory limiter allowing max requests per
// fixed window.
func NewMemoryLimiter(max int, windowLength time.Duration) *MemoryLimiter {
	if max <= 0 {
		max = 5
	}
	if windowLength <= 0 {
		windowLength = 15 * time.Minute
	}

	return &MemoryLimiter{
		entries: make(map[string]*window),
		max:     max,
		window:  windowLength,
		now:     time.Now,
	}
}

// Check counts a request against the client's current window.
func (l *MemoryLimiter) Check(_ context.Context, clientID string) Result {
	if clientID == "" {
		clientID = FallbackClientID
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	if len(l.entries) > sweepThreshold {
		l.sweep(now)
	}

	entry, ok := l.entries[clientID]
	if !ok || entry.resetAt.Before(now) {
		l.entries[clientID] = &window{count: 1, resetAt: now.Add(l.window)}
		return Result{Allowed: true}
	}

	if entry.count >= l.max {
		retry := int(math.Ceil(entry.resetAt.Sub(now).Seconds()))
		if retry < 1 {
			retry = 1
		}
		return Result{Allowed: false, RetryAfterSeconds: retry}
	}

	entry.count++
	return Result{Allowed: true}
}

// sweep drops every expired window. Called opportunistically under the lock
// when the table grows past the threshold.
func (l *MemoryLimiter) sweep(now time.Time) {
	for key, entry := range l.entries {
		if entry.resetAt.Before(now) {
			delete(l.entries, key)
		}
	}
}
