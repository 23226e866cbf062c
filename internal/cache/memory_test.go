package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetOps(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	isMember, err := c.SetIsMember(ctx, "s", "u1")
	require.NoError(t, err)
	assert.False(t, isMember, "expected not member initially")

	require.NoError(t, c.SetAdd(ctx, "s", "u1"))

	isMember, err = c.SetIsMember(ctx, "s", "u1")
	require.NoError(t, err)
	assert.True(t, isMember, "expected member after SetAdd")

	require.NoError(t, c.SetRemove(ctx, "s", "u1"))

	isMember, err = c.SetIsMember(ctx, "s", "u1")
	require.NoError(t, err)
	assert.False(t, isMember, "expected not member after SetRemove")
}

func TestMemoryCache_Counters(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	// Absent counter reads as zero.
	n, err := c.GetCounter(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	n, err = c.Increment(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = c.Decrement(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestMemoryCache_GetCounters(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	_, err := c.Increment(ctx, "a")
	require.NoError(t, err)
	_, err = c.Increment(ctx, "a")
	require.NoError(t, err)

	counters, err := c.GetCounters(ctx, "a", "missing", "a")
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 0, 2}, counters)
}

func TestMemoryCache_Apply(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	err := c.Apply(ctx, []Command{
		SetAddCmd("s", "u1"),
		IncrementCmd("c"),
	})
	require.NoError(t, err)

	isMember, err := c.SetIsMember(ctx, "s", "u1")
	require.NoError(t, err)
	assert.True(t, isMember)

	n, err := c.GetCounter(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	err = c.Apply(ctx, []Command{
		SetRemoveCmd("s", "u1"),
		DecrementCmd("c"),
		DeleteCmd("s"),
	})
	require.NoError(t, err)

	n, err = c.GetCounter(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestNew_BackendSelection(t *testing.T) {
	c, err := New(&Config{Backend: BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryCache{}, c)

	_, err = New(&Config{Backend: "etcd"})
	assert.Error(t, err)
}
