package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrRedisUnavailable = errors.New("redis unavailable")
	ErrExtendFailed     = errors.New("session extend failed")
	ErrDeleteFailed     = errors.New("session delete failed")
)

const (
	sessionPrefix = "session:user:token"
	sessionTTL    = 30 * time.Minute
)

// SessionRepository 服务端持有 access token 的副本：
// 退出登录或封禁后即使 JWT 本身没过期，会话也立即失效。
type SessionRepository struct{}

func sessionKey(userID uint64) string {
	return fmt.Sprintf("%s:%d", sessionPrefix, userID)
}

func (r *SessionRepository) Save(userID uint64, token string) error {
	if err := Client.Set(context.Background(), sessionKey(userID), token, sessionTTL).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}

func (r *SessionRepository) Get(userID uint64) (string, error) {
	token, err := Client.Get(context.Background(), sessionKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", ErrRedisUnavailable
	}
	return token, nil
}

// Extend 每次校验通过后顺延过期时间
func (r *SessionRepository) Extend(userID uint64) error {
	if _, err := Client.Expire(context.Background(), sessionKey(userID), sessionTTL).Result(); err != nil {
		return ErrExtendFailed
	}
	return nil
}

func (r *SessionRepository) Delete(userID uint64) error {
	if err := Client.Del(context.Background(), sessionKey(userID)).Err(); err != nil {
		return ErrDeleteFailed
	}
	return nil
}
