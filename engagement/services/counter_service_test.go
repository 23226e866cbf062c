// Copyright (c) 2024 Wepo Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wepoYJ/wepo-server/internal/cache"
	"github.com/wepoYJ/wepo-server/posts/models"
)

// brokenReadCache fails every counter read.
type brokenReadCache struct {
	*cache.MemoryCache
}

func (b *brokenReadCache) GetCounters(ctx context.Context, keys ...string) ([]int64, error) {
	return nil, errCacheDown
}

func TestCounterService_Enrich(t *testing.T) {
	ctx := context.Background()
	const postID = int64(10)
	viewer := int64(7)

	t.Run("populates counters and viewer flags", func(t *testing.T) {
		mem := cache.NewMemoryCache()
		eng := NewEngagementService(mem)
		svc := NewCounterService(mem)

		require.NoError(t, eng.ToggleLike(ctx, postID, viewer, true))
		require.NoError(t, eng.ToggleLike(ctx, postID, 8, true))
		require.NoError(t, eng.ToggleDislike(ctx, postID, 9, true))
		eng.NoteNewComment(ctx, postID)

		post := &models.Post{ID: postID, AuthorID: 1}
		svc.Enrich(ctx, post, &viewer)

		assert.Equal(t, int64(2), post.LikeCount)
		assert.Equal(t, int64(1), post.DislikeCount)
		assert.Equal(t, int64(1), post.CommentCount)
		assert.True(t, post.LikedByViewer)
		assert.False(t, post.DislikedByViewer)
	})

	t.Run("anonymous viewer gets false flags", func(t *testing.T) {
		mem := cache.NewMemoryCache()
		eng := NewEngagementService(mem)
		svc := NewCounterService(mem)

		require.NoError(t, eng.ToggleLike(ctx, postID, viewer, true))

		post := &models.Post{ID: postID}
		svc.Enrich(ctx, post, nil)

		assert.Equal(t, int64(1), post.LikeCount)
		assert.False(t, post.LikedByViewer)
		assert.False(t, post.DislikedByViewer)
	})

	t.Run("never-engaged post reads as zero", func(t *testing.T) {
		svc := NewCounterService(cache.NewMemoryCache())

		post := &models.Post{ID: 999}
		svc.Enrich(ctx, post, &viewer)

		assert.Zero(t, post.LikeCount)
		assert.Zero(t, post.DislikeCount)
		assert.Zero(t, post.CommentCount)
	})

	t.Run("cache failure degrades to zeroed counters", func(t *testing.T) {
		bc := &brokenReadCache{MemoryCache: cache.NewMemoryCache()}
		svc := NewCounterService(bc)

		post := &models.Post{ID: postID, LikeCount: 55, LikedByViewer: true}
		svc.Enrich(ctx, post, &viewer)

		assert.Zero(t, post.LikeCount, "stale values must not leak through")
		assert.False(t, post.LikedByViewer)
	})
}

func TestCounterService_EnrichAll(t *testing.T) {
	ctx := context.Background()
	viewer := int64(7)

	mem := cache.NewMemoryCache()
	eng := NewEngagementService(mem)
	svc := NewCounterService(mem)

	posts := make([]models.Post, 20)
	for i := range posts {
		posts[i] = models.Post{ID: int64(i + 1)}
		if i%2 == 0 {
			require.NoError(t, eng.ToggleLike(ctx, posts[i].ID, viewer, true))
		}
	}

	svc.EnrichAll(ctx, posts, &viewer)

	for i := range posts {
		if i%2 == 0 {
			assert.Equal(t, int64(1), posts[i].LikeCount, "post %d", posts[i].ID)
			assert.True(t, posts[i].LikedByViewer, "post %d", posts[i].ID)
		} else {
			assert.Zero(t, posts[i].LikeCount, "post %d", posts[i].ID)
			assert.False(t, posts[i].LikedByViewer, "post %d", posts[i].ID)
		}
	}
}
