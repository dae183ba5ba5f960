// Package cache keeps read-through copies of post lists in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/d60-Lab/natural-botanicals/internal/model"
)

var (
	// ErrMiss is returned by Get when no list is cached for the kind.
	ErrMiss = errors.New("cache miss")
	// ErrStale is returned by Set when the kind was invalidated after the
	// caller read its version.
	ErrStale = errors.New("cache entry stale")
)

// PostCache caches the full ordered list of posts per kind.
type PostCache struct {
	client *redis.Client
	ttl    time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

// NewPostCache builds a cache on top of client; ttl<=0 falls back to 5 minutes.
func NewPostCache(client *redis.Client, ttl time.Duration) *PostCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &PostCache{client: client, ttl: ttl}
}

func listKey(kind model.PostKind) string {
	return fmt.Sprintf("posts:list:%s", kind)
}

// versionKey 每次失效自增，读者据此丢弃过期的回填
func versionKey(kind model.PostKind) string {
	return fmt.Sprintf("posts:ver:%s", kind)
}

// Version returns the kind's current generation. Read it before loading
// the list from the store and hand it back to Set.
func (c *PostCache) Version(ctx context.Context, kind model.PostKind) (int64, error) {
	return readVersion(ctx, c.client, kind)
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readVersion(ctx context.Context, cmd getter, kind model.PostKind) (int64, error) {
	v, err := cmd.Get(ctx, versionKey(kind)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// Get returns the cached list or ErrMiss.
func (c *PostCache) Get(ctx context.Context, kind model.PostKind) ([]*model.Post, error) {
	data, err := c.client.Get(ctx, listKey(kind)).Bytes()
	if errors.Is(err, redis.Nil) {
		c.misses.Add(1)
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}
	var out []*model.Post
	if err := json.Unmarshal(data, &out); err != nil {
		// 损坏的缓存当作未命中
		c.misses.Add(1)
		return nil, ErrMiss
	}
	c.hits.Add(1)
	return out, nil
}

// Set stores posts under the kind's key, unless the kind was invalidated
// since version was read, in which case it returns ErrStale.
func (c *PostCache) Set(ctx context.Context, kind model.PostKind, version int64, posts []*model.Post) error {
	if posts == nil {
		posts = []*model.Post{}
	}
	payload, err := json.Marshal(posts)
	if err != nil {
		return err
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readVersion(ctx, tx, kind)
		if err != nil {
			return err
		}
		if current != version {
			return ErrStale
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, listKey(kind), payload, c.ttl)
			return nil
		})
		return err
	}, versionKey(kind))
	if errors.Is(err, redis.TxFailedErr) {
		return ErrStale
	}
	return err
}

// Invalidate bumps the kind's generation and drops its cached list.
func (c *PostCache) Invalidate(ctx context.Context, kind model.PostKind) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, versionKey(kind))
		pipe.Del(ctx, listKey(kind))
		return nil
	})
	return err
}

// Stats reports hit and miss counters since creation.
func (c *PostCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
