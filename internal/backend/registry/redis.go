package registry

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "gocollage:names:"

type RedisRegistry struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRegistry connects to the redis instance at address (host:port or a redis:// URL).
// A ttl of zero keeps claims forever.
func NewRedisRegistry(ctx context.Context, address string, ttl time.Duration) (*RedisRegistry, error) {
	if address == "" {
		return nil, fmt.Errorf("redis address cannot be empty")
	}

	var options *redis.Options
	if parsed, err := redis.ParseURL(address); err == nil {
		options = parsed
	} else {
		options = &redis.Options{Addr: address}
	}

	client := redis.NewClient(options)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to reach redis at %s: %w", options.Addr, err)
	}

	return &RedisRegistry{
		client: client,
		ttl:    ttl,
	}, nil
}

func (r *RedisRegistry) Reserve(ctx context.Context, name string) (bool, error) {
	ok, err := r.client.SetNX(ctx, redisKeyPrefix+name, time.Now().UnixNano(), r.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to reserve name %s: %w", name, err)
	}
	return ok, nil
}

func (r *RedisRegistry) Close() error {
	return r.client.Close()
}
