package ratelimit

import (
	"context"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/hamzazerouala/windevexpert/internal/config"
)

// allower is the slice of TokenBucket the limiter depends on.
type allower interface {
	Allow(ctx context.Context, key string, rate float64, burst int) (*RateLimitResult, error)
}

// LoginLimiter throttles credential attempts per client address. It is
// nil-safe: without a redis backend every attempt is allowed.
type LoginLimiter struct {
	log    *zap.Logger
	bucket allower
	rate   float64
	burst  int
}

func NewLoginLimiter(cfg config.Config, log *zap.Logger) *LoginLimiter {
	if cfg.RateLimit.RedisAddr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RateLimit.RedisAddr,
		Password: cfg.RateLimit.RedisPassword,
		DB:       cfg.RateLimit.RedisDB,
	})
	return &LoginLimiter{
		log:    log.Named("ratelimit.login"),
		bucket: NewTokenBucket(client),
		rate:   cfg.RateLimit.LoginRate,
		burst:  cfg.RateLimit.LoginBurst,
	}
}

// Allow reports whether a login attempt from clientIP may proceed. Backend
// errors fail open; an unreachable redis must not lock everyone out.
func (l *LoginLimiter) Allow(ctx context.Context, clientIP string) bool {
	if l == nil || l.bucket == nil {
		return true
	}
	res, err := l.bucket.Allow(ctx, "login:"+clientIP, l.rate, l.burst)
	if err != nil {
		l.log.Warn("rate limit check failed", zap.Error(err))
		return true
	}
	if !res.Allowed {
		l.log.Info("login attempt throttled", zap.String("client_ip", clientIP))
	}
	return res.Allowed
}
