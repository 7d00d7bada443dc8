package session

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client подмножество команд redis, которое использует хранилище сессий
type Client interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}
