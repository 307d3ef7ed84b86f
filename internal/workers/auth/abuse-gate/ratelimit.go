package abusegate

import (
	"context"
	"time"
)

// WindowCounter is satisfied by database.RedisClient.
type WindowCounter interface {
	IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimiter allows Limit submissions per client inside a fixed window.
type RateLimiter struct {
	counter WindowCounter
	limit   int64
	window  time.Duration
	prefix  string
}

func NewRateLimiter(counter WindowCounter, config *Config) *RateLimiter {
	return &RateLimiter{
		counter: counter,
		limit:   int64(config.RateLimit),
		window:  config.RateWindow,
		prefix:  config.KeyPrefix,
	}
}

func (r *RateLimiter) Allow(ctx context.Context, clientIP string) (bool, error) {
	if clientIP == "" {
		clientIP = "unknown"
	}
	count, err := r.counter.IncrWindow(ctx, r.prefix+clientIP, r.window)
	if err != nil {
		return true, err
	}
	return count <= r.limit, nil
}
