// Package ratelimit bounds how often a single client may call the public chat
// endpoint. Counters live in Redis so every API instance shares one budget.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/folioworks/folio-api/internal/config"
	"github.com/folioworks/folio-api/internal/redact"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "folio:ratelimit:"

// Decision is the result of one Allow check.
type Decision struct {
	Allowed   bool
	Remaining int
	// RetryAfter is the time left in the current window.
	RetryAfter time.Duration
}

// RedisLimiter is a fixed-window counter keyed by client and window start.
type RedisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	now    func() time.Time
	logger *slog.Logger
}

// NewRedisClient creates the Redis client described by cfg.
func NewRedisClient(cfg config.RateLimitConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})
}

// NewRedisLimiter allows limit requests per client per window.
func NewRedisLimiter(client *redis.Client, limit int, window time.Duration, logger *slog.Logger) (*RedisLimiter, error) {
	if client == nil {
		return nil, errors.New("redis client cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}
	if window <= 0 {
		return nil, fmt.Errorf("window must be positive, got %s", window)
	}

	return &RedisLimiter{
		client: client,
		limit:  limit,
		window: window,
		now:    time.Now,
		logger: logger.With(slog.String("component", "rate_limiter")),
	}, nil
}

// Allow counts one request for clientID. When Redis cannot be reached the
// request is allowed and the failure is logged.
func (l *RedisLimiter) Allow(ctx context.Context, clientID string) Decision {
	now := l.now()
	windowStart := now.Truncate(l.window)
	retryAfter := windowStart.Add(l.window).Sub(now)
	key := keyPrefix + clientID + ":" + strconv.FormatInt(windowStart.Unix(), 10)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		l.logger.WarnContext(ctx, "rate limiter unavailable, allowing request",
			"error", redact.Error(err))
		return Decision{Allowed: true, Remaining: l.limit}
	}

	count := int(incr.Val())
	return Decision{
		Allowed:    count <= l.limit,
		Remaining:  max(l.limit-count, 0),
		RetryAfter: retryAfter,
	}
}

// Ping checks the Redis connection.
func (l *RedisLimiter) Ping(ctx context.Context) error {
	if err := l.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}
