package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/yatube/pkg/logger"
)

const (
	keyPrefix = "page:"
	// generationKey 不带 page: 前缀，InvalidateAll 不会删掉它
	generationKey = "pagecache:generation"
)

var errStaleRender = errors.New("page cache invalidated during render")

// RedisPageCache keeps pages under "page:<key>" with a Redis-side TTL, so
// every process of the deployment shares one slot per key.
type RedisPageCache struct {
	client  *redis.Client
	ttl     time.Duration
	metrics *Metrics
}

func NewRedisPageCache(client *redis.Client, ttl time.Duration, metrics *Metrics) *RedisPageCache {
	return &RedisPageCache{client: client, ttl: ttl, metrics: metrics}
}

func (c *RedisPageCache) GetOrRender(ctx context.Context, key string, render Renderer) ([]byte, error) {
	k := keyPrefix + key
	data, err := c.client.Get(ctx, k).Bytes()
	switch {
	case err == nil:
		c.metrics.hit()
		return data, nil
	case errors.Is(err, redis.Nil):
		c.metrics.miss()
	default:
		// redis 不可用时退化为直接渲染
		c.metrics.failed()
		logger.Warn("page cache get failed", zap.String("key", k), zap.Error(err))
		return render(ctx)
	}

	gen, err := c.generation(ctx, c.client)
	if err != nil {
		logger.Warn("page cache generation read failed", zap.Error(err))
		return render(ctx)
	}
	data, err = render(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.store(ctx, k, data, gen); err != nil && !errors.Is(err, errStaleRender) {
		logger.Warn("page cache set failed", zap.String("key", k), zap.Error(err))
	}
	return data, nil
}

func (c *RedisPageCache) generation(ctx context.Context, cmd redis.Cmdable) (int64, error) {
	gen, err := cmd.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// store writes data only if no InvalidateAll ran since gen was read.
func (c *RedisPageCache) store(ctx context.Context, key string, data []byte, gen int64) error {
	return c.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := c.generation(ctx, tx)
		if err != nil {
			return err
		}
		if cur != gen {
			return errStaleRender
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, c.ttl)
			return nil
		})
		return err
	}, generationKey)
}

// InvalidateAll scans the page prefix and deletes in batches.
func (c *RedisPageCache) InvalidateAll(ctx context.Context) error {
	c.metrics.invalidated()
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		return err
	}
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	batch := make([]string, 0, 100)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == cap(batch) {
			if err := c.client.Del(ctx, batch...).Err(); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(batch) > 0 {
		return c.client.Del(ctx, batch...).Err()
	}
	return nil
}
