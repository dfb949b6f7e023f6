package storage

import (
	"github.com/vijaypatidar123/Dream-Nest/config"

	"github.com/go-redis/redis/v8"
)

// NewRedis builds the client used for refresh-token bookkeeping.
func NewRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: "",
		DB:       0,
	})
}
