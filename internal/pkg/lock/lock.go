package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

var ErrNotObtained = errors.New("lock not obtained")

// Lock is a held lock.
type Lock interface {
	Release(ctx context.Context) error
}

// Locker hands out named, mutually exclusive locks shared by every API instance.
type Locker interface {
	Obtain(ctx context.Context, key string) (Lock, error)
}

type RedisLocker struct {
	client *redislock.Client
	ttl    time.Duration
	retry  redislock.RetryStrategy
}

// NewRedisLocker returns a Locker backed by redislock. Obtain retries every 100ms
// until the TTL elapses or ctx is done.
func NewRedisLocker(rdb redis.UniversalClient, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	backoff := 100 * time.Millisecond
	return &RedisLocker{
		client: redislock.New(rdb),
		ttl:    ttl,
		retry:  redislock.LimitRetry(redislock.LinearBackoff(backoff), int(ttl/backoff)),
	}
}

func (l *RedisLocker) Obtain(ctx context.Context, key string) (Lock, error) {
	lk, err := l.client.Obtain(ctx, key, l.ttl, &redislock.Options{RetryStrategy: l.retry})
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, fmt.Errorf("%w: %s", ErrNotObtained, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to obtain lock %s: %w", key, err)
	}
	return lk, nil
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return rdb, nil
}

// NoopLocker grants every lock immediately. Used for single-instance deployments without
// Redis, where row locks inside the database transaction are the only serialization.
type NoopLocker struct{}

func NewNoopLocker() NoopLocker { return NoopLocker{} }

func (NoopLocker) Obtain(context.Context, string) (Lock, error) { return noopLock{}, nil }

type noopLock struct{}

func (noopLock) Release(context.Context) error { return nil }
