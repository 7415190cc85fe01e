package middleware

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/deppfellow/fnvalidacpf/internal/config"
)

const (
	redisRateLimitPrefix  = "fnvalidacpf:ratelimit"
	redisRateLimitWindow  = time.Second
	redisRateLimitTimeout = 250 * time.Millisecond
)

// RedisRateLimiterStore is a fixed-window counter kept in Redis.
//
// Each client may make max(burst, ceil(rps)) requests per one-second window.
// It implements echo's middleware.RateLimiterStore.
//
// Redis failures fail open: the request is allowed and the error logged.
type RedisRateLimiterStore struct {
	client  *redis.Client
	logger  *zerolog.Logger
	limit   int64
	window  time.Duration
	timeout time.Duration
	prefix  string
	now     func() time.Time
}

func NewRedisRateLimiterStore(client *redis.Client, cfg config.RateLimitConfig, logger *zerolog.Logger) *RedisRateLimiterStore {
	limit := int64(math.Ceil(cfg.RPS))
	if int64(cfg.Burst) > limit {
		limit = int64(cfg.Burst)
	}
	if limit < 1 {
		limit = 1
	}

	return &RedisRateLimiterStore{
		client:  client,
		logger:  logger,
		limit:   limit,
		window:  redisRateLimitWindow,
		timeout: redisRateLimitTimeout,
		prefix:  redisRateLimitPrefix,
		now:     time.Now,
	}
}

// Allow increments the counter of identifier's current window and reports
// whether it is still within the limit.
func (s *RedisRateLimiterStore) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	key := s.key(identifier, s.now())

	pipe := s.client.TxPipeline()
	count := pipe.Incr(ctx, key)
	// Two windows so a key never outlives the window it counts by much.
	pipe.Expire(ctx, key, 2*s.window)

	if _, err := pipe.Exec(ctx); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("rate limit store unavailable, allowing request")
		return true, nil
	}

	return count.Val() <= s.limit, nil
}

func (s *RedisRateLimiterStore) key(identifier string, at time.Time) string {
	window := at.UnixNano() / int64(s.window)
	return strings.Join([]string{s.prefix, identifier, strconv.FormatInt(window, 10)}, ":")
}
