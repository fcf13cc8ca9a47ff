package lock

import (
	"context"
	"fmt"
	"time"

	"event_reminder/internal/app"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisPassLock implements app.PassLock with SET NX and a TTL, so a crashed
// holder cannot block later passes forever.
type RedisPassLock struct {
	client *redis.Client
	ttl    time.Duration
	logger *logrus.Entry
}

func NewRedisPassLock(ctx context.Context, redisURL string, ttl time.Duration, logger *logrus.Entry) (*RedisPassLock, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return &RedisPassLock{client: client, ttl: ttl, logger: logger}, nil
}

func (l *RedisPassLock) Acquire(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("redis SETNX %s: %w", key, err)
	}
	if !ok {
		return nil, app.ErrPassInProgress
	}

	release := func() {
		// The pass context may already be cancelled; release on a fresh one.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := releaseScript.Run(releaseCtx, l.client, []string{key}, token).Err(); err != nil {
			l.logger.WithError(err).WithField("key", key).Warn("Failed to release pass lock")
		}
	}
	return release, nil
}

func (l *RedisPassLock) Close() error {
	return l.client.Close()
}
