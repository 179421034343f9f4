package utils

import (
	"context"
	"fmt"
	"time"

	"athletetech/config"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

var (
	// CacheClient is the generic cache client (AI chat history).
	CacheClient *redis.Client
	// AuthCacheClient is the dedicated client for authorization caching.
	AuthCacheClient *redis.Client
)

func newRedisClient(db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
}

func ping(client *redis.Client, name string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis (%s): %w", name, err)
	}
	return nil
}

// InitCache initializes the generic Redis cache client.
func InitCache() error {
	CacheClient = newRedisClient(config.AppConfig.RedisCacheDB)
	return ping(CacheClient, "Cache")
}

// InitAuthCache initializes the Redis client for authorization caching.
func InitAuthCache() error {
	AuthCacheClient = newRedisClient(config.AppConfig.RedisAuthDB)
	return ping(AuthCacheClient, "Auth Cache")
}

// QueueRedisOpt is the asynq connection for the task queue database.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}
