package pkg

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/studyprep/content-service/internal/config"
)

const redisConnectTimeout = 5 * time.Second

// NewRedisClient opens the template cache connection and verifies it with a
// bounded ping, so a misconfigured REDIS_URL fails at startup rather than on
// the first cached load.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opt.ClientName = "content-service"

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), redisConnectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return client, nil
}
