package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cuatrovientos/retail-api/internal/config"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to redis and verifies the connection with a PING
func NewRedisClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	pong, err := client.Ping(pingCtx).Result()
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	slog.Info("connected to Redis", "addr", cfg.Addr, "reply", pong)
	return client, nil
}
