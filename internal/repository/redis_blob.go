package repository

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisBlobStore keeps blobs as plain Redis strings.  Keys are namespaced
// with prefix so several deployments can share one Redis database.
type RedisBlobStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisBlobStore wraps rdb.  prefix may be empty.
func NewRedisBlobStore(rdb *redis.Client, prefix string) *RedisBlobStore {
	return &RedisBlobStore{rdb: rdb, prefix: prefix}
}

func (r *RedisBlobStore) name(key string) string {
	if r.prefix == "" {
		return key
	}
	return r.prefix + ":" + key
}

// Get reads the value under key.  redis.Nil is reported as not found.
func (r *RedisBlobStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, ErrEmptyKey
	}
	v, err := r.rdb.Get(ctx, r.name(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return v, true, nil
}

// Put writes value under key without expiry.
func (r *RedisBlobStore) Put(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return ErrEmptyKey
	}
	return r.rdb.Set(ctx, r.name(key), value, 0).Err()
}
