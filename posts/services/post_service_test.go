// Copyright (c) 2024 Wepo Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wepoYJ/wepo-server/engagement/keys"
	engagementServices "github.com/wepoYJ/wepo-server/engagement/services"
	"github.com/wepoYJ/wepo-server/internal/cache"
	"github.com/wepoYJ/wepo-server/internal/types"
	posterrors "github.com/wepoYJ/wepo-server/posts/errors"
	"github.com/wepoYJ/wepo-server/posts/models"
	"github.com/wepoYJ/wepo-server/posts/repository"
)

// stubIDs hands out sequential ids, or fails when broken.
type stubIDs struct {
	next   int64
	broken bool
}

func (s *stubIDs) NextID() (int64, error) {
	if s.broken {
		return 0, errors.New("clock moved backwards")
	}
	s.next++
	return s.next, nil
}

type fixture struct {
	repo     *MockPostRepository
	notifier *MockCommentNotifier
	mem      *cache.MemoryCache
	ids      *stubIDs
	service  PostService
}

func newFixture() *fixture {
	repo := new(MockPostRepository)
	notifier := new(MockCommentNotifier)
	mem := cache.NewMemoryCache()
	ids := &stubIDs{next: 1000}
	service := NewPostService(
		repo,
		ids,
		engagementServices.NewCounterService(mem),
		engagementServices.NewEngagementService(mem),
		notifier,
	)
	return &fixture{repo: repo, notifier: notifier, mem: mem, ids: ids, service: service}
}

func TestPostService_CreatePost(t *testing.T) {
	ctx := context.Background()
	user := &types.UserContext{UserID: 7}

	t.Run("allocates a fresh id and persists", func(t *testing.T) {
		f := newFixture()
		f.repo.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Post) bool {
			return p.ID == 1001 && p.AuthorID == 7 && p.Content == "hello" && p.ExtendsID == nil
		})).Return(nil)

		id, err := f.service.CreatePost(ctx, &models.CreatePostRequest{Content: "hello"}, user)

		require.NoError(t, err)
		assert.Equal(t, int64(1001), id)
		f.repo.AssertExpectations(t)
	})

	t.Run("id generation failure is fatal for the request only", func(t *testing.T) {
		f := newFixture()
		f.ids.broken = true

		_, err := f.service.CreatePost(ctx, &models.CreatePostRequest{Content: "hello"}, user)

		assert.ErrorIs(t, err, posterrors.ErrIDGeneration)
		f.repo.AssertNotCalled(t, "Create")
	})
}

func TestPostService_Comment(t *testing.T) {
	ctx := context.Background()
	user := &types.UserContext{UserID: 7}
	const parentID = int64(500)

	t.Run("bumps parent counter and notifies author", func(t *testing.T) {
		f := newFixture()
		f.repo.On("CreateComment", mock.Anything, mock.MatchedBy(func(p *models.Post) bool {
			return p.ExtendsID != nil && *p.ExtendsID == parentID && p.AuthorID == 7
		})).Return(int64(99), nil) // parent authored by user 99
		f.notifier.On("NotifyComment", mock.Anything, int64(7), int64(99), int64(1001)).Return(nil)

		id, err := f.service.Comment(ctx, &models.CommentRequest{Content: "nice"}, parentID, user)

		require.NoError(t, err)
		assert.Equal(t, int64(1001), id)

		count, err := f.mem.GetCounter(ctx, keys.PostCommentCount(parentID))
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		f.repo.AssertExpectations(t)
		f.notifier.AssertExpectations(t)
	})

	t.Run("notification failure does not fail the comment", func(t *testing.T) {
		f := newFixture()
		f.repo.On("CreateComment", mock.Anything, mock.Anything).Return(int64(99), nil)
		f.notifier.On("NotifyComment", mock.Anything, int64(7), int64(99), int64(1001)).
			Return(errors.New("notice store down"))

		id, err := f.service.Comment(ctx, &models.CommentRequest{Content: "nice"}, parentID, user)

		require.NoError(t, err, "comment success is independent of notification success")
		assert.Equal(t, int64(1001), id)
	})

	t.Run("missing parent surfaces not found", func(t *testing.T) {
		f := newFixture()
		f.repo.On("CreateComment", mock.Anything, mock.Anything).
			Return(int64(0), repository.ErrNotFound)

		_, err := f.service.Comment(ctx, &models.CommentRequest{Content: "nice"}, parentID, user)

		assert.ErrorIs(t, err, repository.ErrNotFound)
		f.notifier.AssertNotCalled(t, "NotifyComment")
	})
}

func TestPostService_DeletePost(t *testing.T) {
	ctx := context.Background()
	user := &types.UserContext{UserID: 7}
	const postID = int64(200)

	t.Run("deleting a comment decrements the parent counter", func(t *testing.T) {
		f := newFixture()
		parentID := int64(100)
		f.repo.On("Delete", mock.Anything, postID, int64(7)).Return(&parentID, nil)

		// Parent had two comments before the delete.
		_, err := f.mem.Increment(ctx, keys.PostCommentCount(parentID))
		require.NoError(t, err)
		_, err = f.mem.Increment(ctx, keys.PostCommentCount(parentID))
		require.NoError(t, err)

		require.NoError(t, f.service.DeletePost(ctx, postID, user))

		count, err := f.mem.GetCounter(ctx, keys.PostCommentCount(parentID))
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("deleting a top-level post sweeps its keys", func(t *testing.T) {
		f := newFixture()
		f.repo.On("Delete", mock.Anything, postID, int64(7)).Return(nil, nil)

		require.NoError(t, f.mem.SetAdd(ctx, keys.PostLikers(postID), "1"))
		_, err := f.mem.Increment(ctx, keys.PostLikeCount(postID))
		require.NoError(t, err)

		require.NoError(t, f.service.DeletePost(ctx, postID, user))

		isMember, err := f.mem.SetIsMember(ctx, keys.PostLikers(postID), "1")
		require.NoError(t, err)
		assert.False(t, isMember)
	})

	t.Run("not owned or missing reports not found, no side effects", func(t *testing.T) {
		f := newFixture()
		f.repo.On("Delete", mock.Anything, postID, int64(7)).Return(nil, repository.ErrNotFound)

		require.NoError(t, f.mem.SetAdd(ctx, keys.PostLikers(postID), "1"))

		err := f.service.DeletePost(ctx, postID, user)
		assert.ErrorIs(t, err, repository.ErrNotFound)

		isMember, err := f.mem.SetIsMember(ctx, keys.PostLikers(postID), "1")
		require.NoError(t, err)
		assert.True(t, isMember, "cache untouched on failed delete")
	})
}

func TestPostService_GetPost(t *testing.T) {
	ctx := context.Background()
	const postID = int64(300)
	viewer := int64(7)

	f := newFixture()
	eng := engagementServices.NewEngagementService(f.mem)
	require.NoError(t, eng.ToggleLike(ctx, postID, viewer, true))
	eng.NoteNewComment(ctx, postID)
	eng.NoteNewComment(ctx, postID)

	f.repo.On("Get", mock.Anything, postID).Return(&models.Post{ID: postID, AuthorID: 2}, nil)
	f.repo.On("ListComments", mock.Anything, postID, int64(models.MaxCommentsPerFetch), int64(0)).
		Return([]models.Post{
			{ID: 301, AuthorID: 3, ExtendsID: ptr(postID)},
			{ID: 302, AuthorID: 4, ExtendsID: ptr(postID)},
		}, nil)

	result, err := f.service.GetPost(ctx, postID, &viewer)
	require.NoError(t, err)

	assert.Equal(t, int64(1), result.LikeCount)
	assert.Equal(t, int64(2), result.CommentCount)
	assert.True(t, result.LikedByViewer)
	assert.Len(t, result.Comments, 2)
	assert.Zero(t, result.Comments[0].LikeCount)
}

func TestPostService_Browse(t *testing.T) {
	ctx := context.Background()

	t.Run("full page signals a next page", func(t *testing.T) {
		f := newFixture()
		rows := make([]models.Post, 11)
		for i := range rows {
			rows[i] = models.Post{ID: int64(100 - i)}
		}
		f.repo.On("List", mock.Anything, int64(11), int64(0)).Return(rows, nil)

		result, err := f.service.Browse(ctx, 1, 10, nil)
		require.NoError(t, err)

		assert.True(t, result.Next)
		assert.Len(t, result.List, 10)
		assert.Equal(t, int64(1), result.Page)
	})

	t.Run("short page means no next", func(t *testing.T) {
		f := newFixture()
		f.repo.On("List", mock.Anything, int64(11), int64(10)).
			Return([]models.Post{{ID: 5}}, nil)

		result, err := f.service.Browse(ctx, 2, 10, nil)
		require.NoError(t, err)

		assert.False(t, result.Next)
		assert.Len(t, result.List, 1)
	})
}

func ptr(v int64) *int64 { return &v }
