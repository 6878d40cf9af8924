package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/facuperezm/barberia-sub000/internal/errs"
)

// Limiter answers whether one more request under key fits the budget.
// A non-nil error means the backend could not decide.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// ======================================================
// REDIS (shared across instances)
// ======================================================

// RedisLimiter is a fixed-window counter keyed by client and window index.
type RedisLimiter struct {
	client   *redis.Client
	prefix   string
	requests int
	window   time.Duration
	now      func() time.Time
}

var _ Limiter = (*RedisLimiter)(nil)

func NewRedisLimiter(client *redis.Client, requests int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client:   client,
		prefix:   "barberia:ratelimit",
		requests: requests,
		window:   window,
		now:      time.Now,
	}
}

func (l *RedisLimiter) windowKey(key string) string {
	bucket := l.now().UnixNano() / int64(l.window)
	return l.prefix + ":" + key + ":" + strconv.FormatInt(bucket, 10)
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := l.windowKey(key)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, errs.Wrap(err, "rate limit counter")
	}

	return incr.Val() <= int64(l.requests), nil
}

// ======================================================
// LOCAL (single instance fallback)
// ======================================================

// LocalLimiter keeps one token bucket per key in process memory. Idle
// buckets expire so the map does not grow without bound.
type LocalLimiter struct {
	buckets *cache.Cache
	limit   rate.Limit
	burst   int
}

var _ Limiter = (*LocalLimiter)(nil)

func NewLocalLimiter(requests int, window time.Duration) *LocalLimiter {
	return &LocalLimiter{
		buckets: cache.New(2*window, 5*window),
		limit:   rate.Every(window / time.Duration(requests)),
		burst:   requests,
	}
}

func (l *LocalLimiter) Allow(_ context.Context, key string) (bool, error) {
	if v, ok := l.buckets.Get(key); ok {
		lim := v.(*rate.Limiter)
		l.buckets.SetDefault(key, lim)
		return lim.Allow(), nil
	}

	lim := rate.NewLimiter(l.limit, l.burst)
	if err := l.buckets.Add(key, lim, cache.DefaultExpiration); err != nil {
		// lost the race with another request for the same key
		v, _ := l.buckets.Get(key)
		if existing, ok := v.(*rate.Limiter); ok {
			lim = existing
		}
	}
	return lim.Allow(), nil
}
