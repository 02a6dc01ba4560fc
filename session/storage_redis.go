package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrStorageUnavailable is an exported constant or variable used by the session store.
var ErrStorageUnavailable = errors.New("session storage unavailable")

// RedisStorage is a Redis-backed [Storage]. Each store instance owns a single
// key under the configured prefix; the optional TTL bounds how long a
// persisted session outlives the process that wrote it.
type RedisStorage struct {
	redis  redis.UniversalClient
	prefix string
	key    string
	ttl    time.Duration
}

// NewRedisStorage creates a Redis [Storage]. prefix sets the key namespace,
// key names the record within it, and ttl of zero persists without expiry.
func NewRedisStorage(client redis.UniversalClient, prefix, key string, ttl time.Duration) *RedisStorage {
	return &RedisStorage{
		redis:  client,
		prefix: prefix,
		key:    key,
		ttl:    ttl,
	}
}

func (r *RedisStorage) redisKey() string {
	return r.prefix + ":" + r.key
}

// Load fetches the persisted record. An absent key is reported as (nil, nil);
// any other failure wraps [ErrStorageUnavailable].
func (r *RedisStorage) Load(ctx context.Context) ([]byte, error) {
	data, err := r.redis.Get(ctx, r.redisKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return data, nil
}

// Save writes the record with the configured TTL.
func (r *RedisStorage) Save(ctx context.Context, data []byte) error {
	if err := r.redis.Set(ctx, r.redisKey(), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// Delete removes the record. Deleting an absent key is not an error.
func (r *RedisStorage) Delete(ctx context.Context) error {
	if err := r.redis.Del(ctx, r.redisKey()).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}
