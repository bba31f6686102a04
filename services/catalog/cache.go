package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"freightadmin/models"

	"github.com/go-redis/redis/v8"
)

const (
	subActivityKeyPrefix = "subactivities:method:"
	subActivityGenKey    = "subactivities:generation"
)

// SubActivityCache memoises by-method lookups. Invalidate bumps the
// generation; Set refuses to write a result read under an older one.
type SubActivityCache interface {
	Get(ctx context.Context, method models.PricingMethod) ([]models.SubActivityOption, bool, error)
	Generation(ctx context.Context) (int64, error)
	Set(ctx context.Context, method models.PricingMethod, generation int64, options []models.SubActivityOption) error
	Invalidate(ctx context.Context) error
}

// RedisSubActivityCache stores each method's options as one JSON value.
type RedisSubActivityCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisSubActivityCache(client *redis.Client, ttl time.Duration) *RedisSubActivityCache {
	return &RedisSubActivityCache{Client: client, TTL: ttl}
}

func (c *RedisSubActivityCache) Get(ctx context.Context, method models.PricingMethod) ([]models.SubActivityOption, bool, error) {
	data, err := c.Client.Get(ctx, subActivityKeyPrefix+string(method)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var options []models.SubActivityOption
	if err := json.Unmarshal(data, &options); err != nil {
		return nil, false, err
	}
	return options, true, nil
}

func (c *RedisSubActivityCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.Client.Get(ctx, subActivityGenKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Set writes options only while the generation key still holds generation.
func (c *RedisSubActivityCache) Set(ctx context.Context, method models.PricingMethod, generation int64, options []models.SubActivityOption) error {
	data, err := json.Marshal(options)
	if err != nil {
		return err
	}
	err = c.Client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, subActivityGenKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return ErrStaleCacheWrite
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, subActivityKeyPrefix+string(method), data, c.TTL)
			return nil
		})
		return err
	}, subActivityGenKey)
	if errors.Is(err, redis.TxFailedErr) {
		return ErrStaleCacheWrite
	}
	return err
}

// Invalidate drops every method's entry; any catalog write may change eligibility.
func (c *RedisSubActivityCache) Invalidate(ctx context.Context) error {
	keys := make([]string, 0, len(models.PricingMethods))
	for _, m := range models.PricingMethods {
		keys = append(keys, subActivityKeyPrefix+string(m))
	}
	_, err := c.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, subActivityGenKey)
		pipe.Del(ctx, keys...)
		return nil
	})
	return err
}
