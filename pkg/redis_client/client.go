package redisclient

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Config - connection settings for Redis.
type Config struct {
	Addr     string // host:port
	Password string
	DB       int
}

// NewClient connects and pings Redis; the client is closed again when the ping fails.
func NewClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis address is required")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return rdb, nil
}
