package redis

import (
	"context"
	"fmt"
	"net"

	"github.com/go-redis/redis/v8"

	config "github.com/avatarctic/study-assistant-api/configs"
)

// NewRedisClient creates a client for the rate-limit window counters and pings it.
// ctx bounds the initial ping; the caller decides how long to wait for Redis at startup.
func NewRedisClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(Options(cfg))

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", net.JoinHostPort(cfg.Host, cfg.Port), err)
	}
	return client, nil
}

// Options maps the Redis config section onto client options.
func Options(cfg *config.RedisConfig) *redis.Options {
	return &redis.Options{
		Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		PoolTimeout:  cfg.PoolTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}
