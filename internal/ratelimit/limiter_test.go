package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLimiter_AllowsBurstThenRejects(t *testing.T) {
	l := NewLocalLimiter(3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := l.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, ok, "request %d", i)
	}

	ok, err := l.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLocalLimiter_KeysAreIndependent(t *testing.T) {
	l := NewLocalLimiter(1, time.Minute)
	ctx := context.Background()

	ok, _ := l.Allow(ctx, "a")
	assert.True(t, ok)
	ok, _ = l.Allow(ctx, "a")
	assert.False(t, ok)

	ok, _ = l.Allow(ctx, "b")
	assert.True(t, ok)
}

func TestRedisLimiter_WindowKey(t *testing.T) {
	l := NewRedisLimiter(nil, 5, time.Minute)
	l.now = func() time.Time { return time.Unix(120, 0) }
	assert.Equal(t, "barberia:ratelimit:ip:2", l.windowKey("ip"))

	l.now = func() time.Time { return time.Unix(179, 0) }
	assert.Equal(t, "barberia:ratelimit:ip:2", l.windowKey("ip"))

	l.now = func() time.Time { return time.Unix(180, 0) }
	assert.Equal(t, "barberia:ratelimit:ip:3", l.windowKey("ip"))
}

func TestRedisLimiter_UnreachableBackendReturnsError(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	l := NewRedisLimiter(client, 5, time.Minute)
	_, err := l.Allow(context.Background(), "ip")
	assert.Error(t, err)
}
