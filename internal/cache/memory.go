package cache

import (
	"context"
	"sync"
)

// MemoryCache implements Cache with in-process maps. It serves tests and
// single-node deployments where a Redis instance is not worth running.
type MemoryCache struct {
	mu       sync.RWMutex
	sets     map[string]map[string]struct{}
	counters map[string]int64
}

// NewMemoryCache creates a new in-memory cache instance.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		sets:     make(map[string]map[string]struct{}),
		counters: make(map[string]int64),
	}
}

func (m *MemoryCache) SetAdd(ctx context.Context, key string, member string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	set, ok := m.sets[key]
	if !ok {
		set = make(map[string]struct{})
		m.sets[key] = set
	}
	set[member] = struct{}{}
	return nil
}

func (m *MemoryCache) SetRemove(ctx context.Context, key string, member string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if set, ok := m.sets[key]; ok {
		delete(set, member)
	}
	return nil
}

func (m *MemoryCache) SetIsMember(ctx context.Context, key string, member string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	set, ok := m.sets[key]
	if !ok {
		return false, nil
	}
	_, isMember := set[member]
	return isMember, nil
}

// SetCard returns the cardinality of the set at key. Tests use it to assert
// the counter/set invariant.
func (m *MemoryCache) SetCard(key string) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.sets[key]))
}

func (m *MemoryCache) Increment(ctx context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[key]++
	return m.counters[key], nil
}

func (m *MemoryCache) Decrement(ctx context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[key]--
	return m.counters[key], nil
}

func (m *MemoryCache) GetCounter(ctx context.Context, key string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.counters[key], nil
}

func (m *MemoryCache) GetCounters(ctx context.Context, keys ...string) ([]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	counters := make([]int64, len(keys))
	for i, key := range keys {
		counters[i] = m.counters[key]
	}
	return counters, nil
}

func (m *MemoryCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sets, key)
	delete(m.counters, key)
	return nil
}

// Apply executes the commands in order. Each command is applied
// independently, mirroring the non-transactional Redis pipeline.
func (m *MemoryCache) Apply(ctx context.Context, cmds []Command) error {
	for _, cmd := range cmds {
		var err error
		switch cmd.Op {
		case OpSetAdd:
			err = m.SetAdd(ctx, cmd.Key, cmd.Member)
		case OpSetRemove:
			err = m.SetRemove(ctx, cmd.Key, cmd.Member)
		case OpIncrement:
			_, err = m.Increment(ctx, cmd.Key)
		case OpDecrement:
			_, err = m.Decrement(ctx, cmd.Key)
		case OpDelete:
			err = m.Delete(ctx, cmd.Key)
		default:
			return ErrUnknownOp
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (m *MemoryCache) Ping(ctx context.Context) error { return nil }

func (m *MemoryCache) Close() error { return nil }
