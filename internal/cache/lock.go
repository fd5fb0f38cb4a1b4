package cache

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLockHeld 锁已被其他请求持有
var ErrLockHeld = errors.New("lock is held by another request")

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

// Lock 分布式锁句柄
type Lock struct {
	key   string
	token string
}

// AcquireLock 以 SET NX 抢占锁；Redis 未启用时返回空锁句柄，调用方照常继续
func AcquireLock(ctx context.Context, key string, ttl time.Duration) (*Lock, error) {
	if !Enabled() {
		return &Lock{}, nil
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	token := uuid.NewString()
	fullKey := BuildKey(key)
	ok, err := redisClient.SetNX(ctx, fullKey, token, ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrLockHeld
	}
	return &Lock{key: fullKey, token: token}, nil
}

// Release 释放锁，只删除自己持有的 token
func (l *Lock) Release(ctx context.Context) error {
	if l == nil || l.key == "" || !Enabled() {
		return nil
	}
	return releaseScript.Run(ctx, redisClient, []string{l.key}, l.token).Err()
}
