package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisPublisher pushes appointment changes to the per-barber channel the
// staff dashboard subscribes to.
type RedisPublisher struct {
	client *redis.Client
	prefix string
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client, prefix: "barberia:dashboard"}
}

func (p *RedisPublisher) Name() string { return "redis" }

func Channel(prefix string, barberID uint) string {
	return fmt.Sprintf("%s:barber:%d", prefix, barberID)
}

func (p *RedisPublisher) Send(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, Channel(p.prefix, ev.BarberID), payload).Err()
}
