package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agrimart/agrimart/internal/config"
	redis "github.com/redis/go-redis/v9"
)

const keyAnalyzeClient = "analyze:client:%s"

// AnalyzeLimiter guards the image-analysis endpoint per client address.
// A nil limiter allows everything, so the server works without redis.
type AnalyzeLimiter struct {
	enabled bool
	bucket  *TokenBucket
	rate    float64
	burst   int
}

func NewAnalyzeLimiter(cfg config.Config) (*AnalyzeLimiter, error) {
	limitCfg := cfg.RateLimit
	if !limitCfg.Enabled {
		return nil, nil
	}

	addr := strings.TrimSpace(limitCfg.RedisAddr)
	if addr == "" {
		return nil, errors.New("rate limit redis addr is required")
	}
	if limitCfg.AnalyzeRate <= 0 || limitCfg.AnalyzeBurst <= 0 {
		return nil, errors.New("analyze rate limit must be positive")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(limitCfg.RedisPassword),
		DB:       limitCfg.RedisDB,
	})

	return &AnalyzeLimiter{
		enabled: true,
		bucket:  NewTokenBucket(client),
		rate:    limitCfg.AnalyzeRate,
		burst:   limitCfg.AnalyzeBurst,
	}, nil
}

func (l *AnalyzeLimiter) Enabled() bool {
	return l != nil && l.enabled
}

func (l *AnalyzeLimiter) Allow(ctx context.Context, clientIP string) (bool, error) {
	if !l.Enabled() {
		return true, nil
	}

	res, err := l.bucket.Allow(ctx, fmt.Sprintf(keyAnalyzeClient, strings.TrimSpace(clientIP)), l.rate, l.burst)
	if err != nil {
		return false, err
	}
	return res.Allowed, nil
}
