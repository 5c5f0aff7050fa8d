package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// 会话存储共用的客户端。没有 redis 就没有可校验的登录态，
// 所以 Init 失败让进程直接起不来，不做降级。
var Client *redis.Client

func Init(addr, password string, db int) error {
	Client = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
		// 会话读写都在请求路径上，超时要短
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return Client.Ping(ctx).Err()
}

func Close() error {
	if Client == nil {
		return nil
	}
	return Client.Close()
}
