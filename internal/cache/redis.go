package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisCache implements Cache using Redis sets and INCR/DECR counters.
type RedisCache struct {
	client redis.UniversalClient
	config *Config
}

// NewRedisCache creates a new Redis cache instance and verifies the connection.
func NewRedisCache(config *Config) (*RedisCache, error) {
	var client redis.UniversalClient

	if config.Redis.Cluster.Enabled && len(config.Redis.Cluster.Addresses) > 0 {
		client = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:        config.Redis.Cluster.Addresses,
			Password:     config.Redis.Password,
			PoolSize:     config.Redis.PoolSize,
			MinIdleConns: config.Redis.MinIdleConns,
			MaxConnAge:   config.Redis.MaxConnAge,
		})
	} else {
		client = redis.NewClient(&redis.Options{
			Addr:         config.Redis.Address,
			Password:     config.Redis.Password,
			DB:           config.Redis.Database,
			PoolSize:     config.Redis.PoolSize,
			MinIdleConns: config.Redis.MinIdleConns,
			MaxConnAge:   config.Redis.MaxConnAge,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}

	return &RedisCache{
		client: client,
		config: config,
	}, nil
}

// SetAdd adds a member to a Redis set at the given key.
func (r *RedisCache) SetAdd(ctx context.Context, key string, member string) error {
	if err := r.client.SAdd(ctx, r.prefixed(key), member).Err(); err != nil {
		return fmt.Errorf("redis sadd error: %w", err)
	}
	return nil
}

// SetRemove removes a member from a Redis set at the given key.
func (r *RedisCache) SetRemove(ctx context.Context, key string, member string) error {
	if err := r.client.SRem(ctx, r.prefixed(key), member).Err(); err != nil {
		return fmt.Errorf("redis srem error: %w", err)
	}
	return nil
}

// SetIsMember checks if a member exists in a Redis set at the given key.
func (r *RedisCache) SetIsMember(ctx context.Context, key string, member string) (bool, error) {
	isMember, err := r.client.SIsMember(ctx, r.prefixed(key), member).Result()
	if err != nil {
		return false, fmt.Errorf("redis sismember error: %w", err)
	}
	return isMember, nil
}

// Increment atomically increments a counter in Redis.
func (r *RedisCache) Increment(ctx context.Context, key string) (int64, error) {
	result, err := r.client.Incr(ctx, r.prefixed(key)).Result()
	if err != nil {
		return 0, fmt.Errorf("redis incr error: %w", err)
	}
	return result, nil
}

// Decrement atomically decrements a counter in Redis.
func (r *RedisCache) Decrement(ctx context.Context, key string) (int64, error) {
	result, err := r.client.Decr(ctx, r.prefixed(key)).Result()
	if err != nil {
		return 0, fmt.Errorf("redis decr error: %w", err)
	}
	return result, nil
}

// GetCounter reads a counter value. redis.Nil reads as zero so that an
// evicted counter and a genuinely-zero counter look the same to callers.
func (r *RedisCache) GetCounter(ctx context.Context, key string) (int64, error) {
	result, err := r.client.Get(ctx, r.prefixed(key)).Int64()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, fmt.Errorf("redis get error: %w", err)
	}
	return result, nil
}

// GetCounters reads several counters with one MGET round trip.
func (r *RedisCache) GetCounters(ctx context.Context, keys ...string) ([]int64, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = r.prefixed(key)
	}

	values, err := r.client.MGet(ctx, prefixed...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis mget error: %w", err)
	}

	counters := make([]int64, len(keys))
	for i, v := range values {
		if v == nil {
			continue // absent reads as zero
		}
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("redis mget: unexpected value type %T for key %s", v, keys[i])
		}
		var n int64
		if _, err := fmt.Sscan(s, &n); err != nil {
			return nil, fmt.Errorf("redis mget: non-numeric counter at key %s: %w", keys[i], err)
		}
		counters[i] = n
	}
	return counters, nil
}

// Delete removes a key from Redis.
func (r *RedisCache) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.prefixed(key)).Err(); err != nil {
		return fmt.Errorf("redis delete error: %w", err)
	}
	return nil
}

// Apply executes a command batch over a single pipeline. Pipelining gives one
// network round trip, not multi-key atomicity; callers that need both a set
// mutation and its counter bump issue them together here.
func (r *RedisCache) Apply(ctx context.Context, cmds []Command) error {
	if len(cmds) == 0 {
		return nil
	}

	pipe := r.client.Pipeline()
	for _, cmd := range cmds {
		key := r.prefixed(cmd.Key)
		switch cmd.Op {
		case OpSetAdd:
			pipe.SAdd(ctx, key, cmd.Member)
		case OpSetRemove:
			pipe.SRem(ctx, key, cmd.Member)
		case OpIncrement:
			pipe.Incr(ctx, key)
		case OpDecrement:
			pipe.Decr(ctx, key)
		case OpDelete:
			pipe.Del(ctx, key)
		default:
			return fmt.Errorf("%w: %d", ErrUnknownOp, cmd.Op)
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis pipeline error: %w", err)
	}
	return nil
}

// Ping tests the Redis connection.
func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (r *RedisCache) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

// GetClient returns the underlying Redis client for advanced operations.
func (r *RedisCache) GetClient() redis.UniversalClient {
	return r.client
}

func (r *RedisCache) prefixed(key string) string {
	return r.config.Prefix + key
}
