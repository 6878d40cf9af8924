package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/facuperezm/barberia-sub000/internal/config"
	"github.com/facuperezm/barberia-sub000/internal/errs"
)

// NewRedis connects and pings. The caller owns Close.
func NewRedis(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errs.Wrapf(err, "ping redis at %s", cfg.Addr)
	}
	return client, nil
}
