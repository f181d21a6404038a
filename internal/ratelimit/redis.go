package ratelimit

import (
	"context"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const redisKeyPrefix = "ratelimit:contact:"

// fixedWindowScript counts a request and reads the window's remaining
// lifetime in a single atomic operation. The key expires with the window, so
// expired windows never need an explicit reset.
var fixedWindowScript = redis.NewScript(`
	local current = redis.call('INCR', KEYS[1])
	if current == 1 then
		redis.call('PEXPIRE', KEYS[1], ARGV[1])
	end
	local ttl = redis.call('PTTL', KEYS[1])
	return {current, ttl}
`)

// RedisLimiter implements the same fixed-window algorithm as MemoryLimiter on
// top of a shared Redis store, keyed identically, for deployments with more
// than one process. Redis errors fail open: throttling is protection, not a
// correctness guarantee, and a down cache must not take the form with it.
type RedisLimiter struct {
	client *redis.Client
	max    int
	window time.Duration
	logger zerolog.Logger
}

// NewRedisLimiter constructs a Redis-backed limiter allowing max requests per
// fixed window.
func NewRedisLimiter(client *redis.Client, max int, windowLength time.Duration, logger zerolog.Logger) *RedisLimiter {
	if max <= 0 {
		max = 5
	}
	if windowLength <= 0 {
		windowLength = 15 * time.Minute
	}

	return &RedisLimiter{
		client: client,
		max:    max,
		window: windowLength,
		logger: logger.With().Str("component", "rate_limiter").Logger(),
	}
}

// Check counts a request against the client's current window.
func (l *RedisLimiter) Check(ctx context.Context, clientID string) Result {
	if clientID == "" {
		clientID = FallbackClientID
	}

	values, err := fixedWindowScript.Run(ctx, l.client,
		[]string{redisKeyPrefix + clientID},
		l.window.Milliseconds(),
	).Int64Slice()
	if err != nil || len(values) != 2 {
		l.logger.Warn().Err(err).Str("client_id", clientID).Msg("rate limit check failed, allowing request")
		return Result{Allowed: true}
	}

	count, ttlMillis := values[0], values[1]
	if count > int64(l.max) {
		retry := int(math.Ceil(float64(ttlMillis) / 1000))
		if retry < 1 {
			retry = 1
		}
		return Result{Allowed: false, RetryAfterSeconds: retry}
	}

	return Result{Allowed: true}
}
