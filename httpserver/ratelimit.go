package httpserver

import (
	"context"
	"fmt"
	"time"

	"nettileffa/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisRateLimitPrefix = "nettileffa:ratelimit"

// RedisRateLimiterStore is an echo RateLimiterStore backed by a fixed
// window counter in Redis, so that several API instances share one budget
// per client. Redis failures let the request through.
type RedisRateLimiterStore struct {
	client  redis.Cmdable
	limit   int64
	window  time.Duration
	timeout time.Duration
	now     func() time.Time
	logger  *zap.SugaredLogger
}

func NewRedisRateLimiterStore(client redis.Cmdable, limit int, window time.Duration, l *zap.SugaredLogger) *RedisRateLimiterStore {
	if window <= 0 {
		window = time.Second
	}
	if l == nil {
		l = logger.NOOPLogger
	}
	return &RedisRateLimiterStore{
		client:  client,
		limit:   int64(limit),
		window:  window,
		timeout: 200 * time.Millisecond,
		now:     time.Now,
		logger:  l,
	}
}

// Allow implements middleware.RateLimiterStore.
func (s *RedisRateLimiterStore) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	slot := s.now().UnixNano() / int64(s.window)
	key := fmt.Sprintf("%s:%s:%d", redisRateLimitPrefix, identifier, slot)

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, 2*s.window)
	if _, err := pipe.Exec(ctx); err != nil {
		s.logger.Warnw("rate limiter store unavailable", "key", key, "error", err)
		return true, nil
	}

	return incr.Val() <= s.limit, nil
}

// NewRedisClient connects to addr and pings it. It returns an error when
// the server cannot be reached so that the caller can fall back to the
// in-memory limiter.
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
