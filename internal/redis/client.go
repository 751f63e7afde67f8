package redisdb

import (
	"github.com/redis/go-redis/v9"
	"newsum/internal/config"
)

// NewClient returns a redis client for the view store, or nil when no
// address is configured (the web client then keeps views in memory).
func NewClient(cfg *config.Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}
