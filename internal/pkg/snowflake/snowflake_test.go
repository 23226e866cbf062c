// Copyright (c) 2024 Wepo Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package snowflake

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNode_RangeValidation(t *testing.T) {
	_, err := NewNode(0, 0)
	assert.NoError(t, err)

	_, err = NewNode(32, 0)
	assert.Error(t, err)

	_, err = NewNode(0, -1)
	assert.Error(t, err)
}

func TestNextID_UniqueUnderConcurrency(t *testing.T) {
	node, err := NewNode(1, 1)
	require.NoError(t, err)

	const goroutines = 16
	const perGoroutine = 500

	var wg sync.WaitGroup
	results := make([][]int64, goroutines)
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			ids := make([]int64, 0, perGoroutine)
			for i := 0; i < perGoroutine; i++ {
				id, err := node.NextID()
				if err != nil {
					t.Errorf("NextID failed: %v", err)
					return
				}
				ids = append(ids, id)
			}
			results[g] = ids
		}(g)
	}
	wg.Wait()

	seen := make(map[int64]struct{}, goroutines*perGoroutine)
	for _, ids := range results {
		for _, id := range ids {
			_, dup := seen[id]
			require.False(t, dup, "duplicate id %d", id)
			seen[id] = struct{}{}
		}
	}
	assert.Len(t, seen, goroutines*perGoroutine)
}

func TestNextID_MonotonicAcrossTicks(t *testing.T) {
	node, err := NewNode(0, 3)
	require.NoError(t, err)

	first, err := node.NextID()
	require.NoError(t, err)

	time.Sleep(2 * time.Millisecond)

	second, err := node.NextID()
	require.NoError(t, err)

	assert.Greater(t, second, first)
	assert.True(t, Timestamp(second).After(Timestamp(first)))
}

func TestNextID_ClockMovedBackwards(t *testing.T) {
	node, err := NewNode(0, 0)
	require.NoError(t, err)

	current := int64(1_000_000)
	node.now = func() int64 { return current }

	_, err = node.NextID()
	require.NoError(t, err)

	current = 999_500
	_, err = node.NextID()
	assert.ErrorIs(t, err, ErrClockMovedBackwards)

	// Once the clock catches up, the node recovers on its own.
	current = 1_000_001
	_, err = node.NextID()
	assert.NoError(t, err)
}

func TestNextID_SequenceWithinSameMillisecond(t *testing.T) {
	node, err := NewNode(2, 7)
	require.NoError(t, err)

	current := int64(5_000_000)
	node.now = func() int64 { return current }

	a, err := node.NextID()
	require.NoError(t, err)
	b, err := node.NextID()
	require.NoError(t, err)

	assert.Equal(t, a+1, b, "ids in the same millisecond differ only in sequence")
}
