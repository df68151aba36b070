package database

import (
	"context"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"option-set-api/internal/config"
)

var redisClient *redis.Client

// InitRedis connects the shared Redis client. A connection failure is
// returned, not fatal; callers may run without the cache.
func InitRedis(cfg config.Config, log *zap.Logger) error {
	var client *redis.Client

	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return err
		}
		client = redis.NewClient(opts)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	if err := client.Ping(context.Background()).Err(); err != nil {
		return err
	}

	redisClient = client
	log.Info("Redis connection established successfully",
		zap.String("addr", cfg.Redis.Addr),
		zap.Int("db", cfg.Redis.DB),
	)
	return nil
}

// GetRedis returns the shared Redis client, or nil when Redis is not
// configured. Returning nil keeps tests runnable without Redis.
func GetRedis() *redis.Client {
	return redisClient
}
