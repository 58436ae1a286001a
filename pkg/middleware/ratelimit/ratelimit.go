// Package ratelimit limits requests per client IP. Counters live in Redis
// when a client is given and in process memory otherwise.
package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/Skotchmaster/job_board/pkg/apperr"
)

const redisTimeout = 500 * time.Millisecond

// RedisStore is a fixed-window counter. It fails open: when Redis cannot be
// reached the request is allowed and the error is logged.
type RedisStore struct {
	Client *redis.Client
	Limit  int
	Window time.Duration
	Prefix string
	Logger *slog.Logger
	Now    func() time.Time
}

func (s *RedisStore) key(identifier string) string {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	bucket := now().UnixNano() / int64(s.Window)
	return fmt.Sprintf("%s:%s:%d", s.Prefix, identifier, bucket)
}

func (s *RedisStore) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	key := s.key(identifier)
	pipe := s.Client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, s.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		if s.Logger != nil {
			s.Logger.Warn("rate_limit_store_unavailable", "key", key, "error", err)
		}
		return true, err
	}
	return incr.Val() <= int64(s.Limit), nil
}

type Config struct {
	Limit  int
	Window time.Duration
	Prefix string
	Redis  *redis.Client
	Logger *slog.Logger
}

func newStore(cfg Config) middleware.RateLimiterStore {
	if cfg.Redis != nil {
		return &RedisStore{
			Client: cfg.Redis,
			Limit:  cfg.Limit,
			Window: cfg.Window,
			Prefix: cfg.Prefix,
			Logger: cfg.Logger,
		}
	}
	return middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(cfg.Limit) / cfg.Window.Seconds()),
		Burst:     cfg.Limit,
		ExpiresIn: cfg.Window,
	})
}

// New allows cfg.Limit requests per cfg.Window for each client IP and answers
// the rest with apperr.ErrRateLimited.
func New(cfg Config) echo.MiddlewareFunc {
	if cfg.Prefix == "" {
		cfg.Prefix = "ratelimit"
	}
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: newStore(cfg),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return apperr.Wrap(apperr.ErrInternal, err)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return apperr.ErrRateLimited
		},
	})
}
