package ratelimit

import "context"

// FallbackClientID is the shared bucket for requests whose origin cannot be
// determined. All unidentifiable clients throttle against this one key, which
// is deliberately coarser than per-client limiting.
const FallbackClientID = "unknown"

// Result reports the outcome of a rate limit check.
type Result struct {
	Allowed           bool
	RetryAfterSeconds int
}

// Limiter counts submissions per client identifier over a fixed window.
type Limiter interface {
	Check(ctx context.Context, clientID string) Result
}
