package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Cache is the engagement cache store: per-key sets of user ids and numeric
// counters. All operations go over the network to the backing store; none of
// them hold in-process locks across I/O.
type Cache interface {
	// SetAdd adds a member to the set at key.
	SetAdd(ctx context.Context, key string, member string) error

	// SetRemove removes a member from the set at key.
	SetRemove(ctx context.Context, key string, member string) error

	// SetIsMember checks membership in the set at key.
	SetIsMember(ctx context.Context, key string, member string) (bool, error)

	// Increment atomically increments the counter at key and returns the new value.
	Increment(ctx context.Context, key string) (int64, error)

	// Decrement atomically decrements the counter at key and returns the new value.
	Decrement(ctx context.Context, key string) (int64, error)

	// GetCounter reads the counter at key. An absent key reads as zero.
	GetCounter(ctx context.Context, key string) (int64, error)

	// GetCounters reads several counters in a single round trip, in key order.
	GetCounters(ctx context.Context, keys ...string) ([]int64, error)

	// Delete removes the value at key, whatever its type.
	Delete(ctx context.Context, key string) error

	// Apply submits a command batch as one round trip. The batch is not a
	// transaction: commands are applied in order but a later command can fail
	// after an earlier one succeeded.
	Apply(ctx context.Context, cmds []Command) error

	// Ping tests the connection to the backing store.
	Ping(ctx context.Context) error

	// Close closes the connection to the backing store.
	Close() error
}

// Op identifies a batched command kind.
type Op int

const (
	OpSetAdd Op = iota
	OpSetRemove
	OpIncrement
	OpDecrement
	OpDelete
)

// Command is one entry of an Apply batch.
type Command struct {
	Op     Op
	Key    string
	Member string // set only for OpSetAdd / OpSetRemove
}

func SetAddCmd(key, member string) Command    { return Command{Op: OpSetAdd, Key: key, Member: member} }
func SetRemoveCmd(key, member string) Command { return Command{Op: OpSetRemove, Key: key, Member: member} }
func IncrementCmd(key string) Command         { return Command{Op: OpIncrement, Key: key} }
func DecrementCmd(key string) Command         { return Command{Op: OpDecrement, Key: key} }
func DeleteCmd(key string) Command            { return Command{Op: OpDelete, Key: key} }

// Config holds configuration for cache instances.
type Config struct {
	// Backend selects the implementation: "redis" or "memory".
	Backend string `json:"backend"`

	// Prefix is added to all cache keys.
	Prefix string `json:"prefix"`

	// Redis holds Redis-specific settings, used when Backend is "redis".
	Redis RedisConfig `json:"redis"`
}

// RedisConfig holds Redis-specific configuration.
type RedisConfig struct {
	Address      string        `json:"address"`
	Password     string        `json:"password"`
	Database     int           `json:"database"`
	PoolSize     int           `json:"poolSize"`
	MinIdleConns int           `json:"minIdleConns"`
	MaxConnAge   time.Duration `json:"maxConnAge"`
	Cluster      ClusterConfig `json:"cluster"`
}

// ClusterConfig holds Redis cluster configuration.
type ClusterConfig struct {
	Enabled   bool     `json:"enabled"`
	Addresses []string `json:"addresses"`
}

// Backend names.
const (
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Common cache errors.
var (
	// ErrCacheUnavailable is returned when the backing store cannot be reached.
	ErrCacheUnavailable = errors.New("cache unavailable")

	// ErrUnknownOp is returned by Apply for a command with an unknown Op.
	ErrUnknownOp = errors.New("unknown cache command op")
)

// New creates a cache instance for the configured backend.
func New(cfg *Config) (Cache, error) {
	switch cfg.Backend {
	case BackendRedis:
		return NewRedisCache(cfg)
	case BackendMemory:
		return NewMemoryCache(), nil
	default:
		return nil, fmt.Errorf("unsupported cache backend: %q", cfg.Backend)
	}
}
