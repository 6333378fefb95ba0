package config

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrConnectingRedisFailed is returned when Redis does not answer the initial ping.
var ErrConnectingRedisFailed = errors.New("connecting redis failed")

// NewRedisClient creates and pings a client for REDIS_ADDR.
func NewRedisClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Join(ErrConnectingRedisFailed, err)
	}

	return client, nil
}
