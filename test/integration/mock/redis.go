package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var (
	redisOnce   sync.Once
	redisServer *miniredis.Miniredis
	redisClient *redis.Client
)

// NewRedis starts a shared miniredis server on first use and returns a
// client connected to it.
func NewRedis() *redis.Client {
	redisOnce.Do(func() {
		server, err := miniredis.Run()
		if err != nil {
			panic(err)
		}
		redisServer = server
		redisClient = redis.NewClient(&redis.Options{Addr: server.Addr()})
	})
	return redisClient
}

// RedisAddr returns the address of the shared server, empty before NewRedis.
func RedisAddr() string {
	if redisServer == nil {
		return ""
	}
	return redisServer.Addr()
}

// ClearRedis drops every key.
func ClearRedis(client *redis.Client) error {
	return client.FlushAll(context.Background()).Err()
}
