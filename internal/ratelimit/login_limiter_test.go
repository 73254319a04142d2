package ratelimit

import (
	"context"
	"testing"
	"time"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/hamzazerouala/windevexpert/internal/config"
)

// countingBucket hands out burst tokens and then denies, standing in for
// the redis-backed bucket.
type countingBucket struct {
	taken map[string]int
}

func (b *countingBucket) Allow(ctx context.Context, key string, rate float64, burst int) (*RateLimitResult, error) {
	if b.taken == nil {
		b.taken = make(map[string]int)
	}
	b.taken[key]++
	remaining := burst - b.taken[key]
	if remaining < 0 {
		return &RateLimitResult{Allowed: false, Limit: burst, Remaining: 0, RetryAfter: time.Second}, nil
	}
	return &RateLimitResult{Allowed: true, Limit: burst, Remaining: remaining}, nil
}

func TestNewLoginLimiterDisabledWithoutRedis(t *testing.T) {
	l := NewLoginLimiter(config.Config{}, zap.NewNop())
	if l != nil {
		t.Fatal("expected nil limiter when redis is not configured")
	}
	if !l.Allow(t.Context(), "203.0.113.7") {
		t.Fatal("nil limiter must allow every attempt")
	}
}

func TestLoginLimiterDeniesAfterBurst(t *testing.T) {
	l := &LoginLimiter{
		log:    zap.NewNop(),
		bucket: &countingBucket{},
		rate:   1,
		burst:  3,
	}

	for i := 0; i < 3; i++ {
		if !l.Allow(t.Context(), "203.0.113.7") {
			t.Fatalf("attempt %d within burst should be allowed", i+1)
		}
	}
	if l.Allow(t.Context(), "203.0.113.7") {
		t.Fatal("attempt beyond burst should be denied")
	}

	// A different client has its own bucket.
	if !l.Allow(t.Context(), "198.51.100.9") {
		t.Fatal("other client should not be throttled")
	}
}

func TestLoginLimiterFailsOpen(t *testing.T) {
	// Port 1 refuses connections; a dead backend must not block logins.
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { client.Close() })

	l := &LoginLimiter{
		log:    zap.NewNop(),
		bucket: NewTokenBucket(client),
		rate:   1,
		burst:  5,
	}
	if !l.Allow(t.Context(), "203.0.113.7") {
		t.Fatal("backend error must fail open")
	}
}
