// Copyright (c) 2024 Wepo Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"fmt"

	engagementServices "github.com/wepoYJ/wepo-server/engagement/services"
	"github.com/wepoYJ/wepo-server/internal/pkg/log"
	"github.com/wepoYJ/wepo-server/internal/types"
	"github.com/wepoYJ/wepo-server/posts/errors"
	"github.com/wepoYJ/wepo-server/posts/models"
	"github.com/wepoYJ/wepo-server/posts/repository"
)

// IDGenerator allocates globally unique post/comment ids.
type IDGenerator interface {
	NextID() (int64, error)
}

// CommentNotifier delivers the "someone commented on your post" notice.
// Implemented by the notifications service; declared here so posts depends on
// the capability, not the feature package.
type CommentNotifier interface {
	NotifyComment(ctx context.Context, senderID, addresseeID, commentID int64) error
}

// PostService defines the interface for post operations.
type PostService interface {
	CreatePost(ctx context.Context, req *models.CreatePostRequest, user *types.UserContext) (int64, error)
	Comment(ctx context.Context, req *models.CommentRequest, parentID int64, user *types.UserContext) (int64, error)
	DeletePost(ctx context.Context, postID int64, user *types.UserContext) error
	GetPost(ctx context.Context, postID int64, viewerID *int64) (*models.PostWithComments, error)
	Browse(ctx context.Context, page, limit int64, viewerID *int64) (*models.PageResult, error)
	Mine(ctx context.Context, page, limit int64, user *types.UserContext) (*models.PageResult, error)
}

// postService implements the PostService interface.
type postService struct {
	repo       repository.PostRepository
	ids        IDGenerator
	counters   engagementServices.CounterService
	engagement engagementServices.EngagementService
	notifier   CommentNotifier
}

// NewPostService creates a new instance of the post service.
func NewPostService(
	repo repository.PostRepository,
	ids IDGenerator,
	counters engagementServices.CounterService,
	engagement engagementServices.EngagementService,
	notifier CommentNotifier,
) PostService {
	return &postService{
		repo:       repo,
		ids:        ids,
		counters:   counters,
		engagement: engagement,
		notifier:   notifier,
	}
}

func (s *postService) CreatePost(ctx context.Context, req *models.CreatePostRequest, user *types.UserContext) (int64, error) {
	id, err := s.ids.NextID()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", errors.ErrIDGeneration, err)
	}

	post := &models.Post{
		ID:       id,
		AuthorID: user.UserID,
		Content:  req.Content,
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return 0, fmt.Errorf("failed to create post: %w", err)
	}
	return id, nil
}

// Comment inserts the comment row, then bumps the parent's cached comment
// counter and notifies the parent author. The relational insert is the
// operation of record; the two follow-ups never unwind it.
func (s *postService) Comment(ctx context.Context, req *models.CommentRequest, parentID int64, user *types.UserContext) (int64, error) {
	id, err := s.ids.NextID()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", errors.ErrIDGeneration, err)
	}

	comment := &models.Post{
		ID:        id,
		AuthorID:  user.UserID,
		Content:   req.Content,
		ExtendsID: &parentID,
	}
	parentAuthorID, err := s.repo.CreateComment(ctx, comment)
	if err != nil {
		return 0, fmt.Errorf("failed to create comment: %w", err)
	}

	s.engagement.NoteNewComment(ctx, parentID)

	if err := s.notifier.NotifyComment(ctx, user.UserID, parentAuthorID, id); err != nil {
		log.WarnWithContext(ctx, "comment notice for post %d not delivered: %v", parentID, err)
	}

	return id, nil
}

func (s *postService) DeletePost(ctx context.Context, postID int64, user *types.UserContext) error {
	parentID, err := s.repo.Delete(ctx, postID, user.UserID)
	if err != nil {
		return err
	}

	// Cache cleanup trails the relational delete and is best-effort.
	s.engagement.CleanupPost(ctx, postID, parentID)
	return nil
}

func (s *postService) GetPost(ctx context.Context, postID int64, viewerID *int64) (*models.PostWithComments, error) {
	post, err := s.repo.Get(ctx, postID)
	if err != nil {
		return nil, err
	}

	comments, err := s.repo.ListComments(ctx, postID, models.MaxCommentsPerFetch, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}

	s.counters.Enrich(ctx, post, viewerID)
	s.counters.EnrichAll(ctx, comments, viewerID)

	return &models.PostWithComments{
		Post:     *post,
		Comments: comments,
	}, nil
}

func (s *postService) Browse(ctx context.Context, page, limit int64, viewerID *int64) (*models.PageResult, error) {
	posts, err := s.listPage(ctx, page, limit, func(limit, offset int64) ([]models.Post, error) {
		return s.repo.List(ctx, limit, offset)
	})
	if err != nil {
		return nil, err
	}
	return s.finishPage(ctx, posts, page, limit, viewerID), nil
}

func (s *postService) Mine(ctx context.Context, page, limit int64, user *types.UserContext) (*models.PageResult, error) {
	posts, err := s.listPage(ctx, page, limit, func(limit, offset int64) ([]models.Post, error) {
		return s.repo.ListByAuthor(ctx, user.UserID, limit, offset)
	})
	if err != nil {
		return nil, err
	}
	viewerID := user.UserID
	return s.finishPage(ctx, posts, page, limit, &viewerID), nil
}

// listPage fetches limit+1 rows so the page result can tell whether a next
// page exists without a count query.
func (s *postService) listPage(ctx context.Context, page, limit int64, fetch func(limit, offset int64) ([]models.Post, error)) ([]models.Post, error) {
	if page < 1 {
		page = 1
	}
	offset := limit * (page - 1)
	posts, err := fetch(limit+1, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

func (s *postService) finishPage(ctx context.Context, posts []models.Post, page, limit int64, viewerID *int64) *models.PageResult {
	next := int64(len(posts)) > limit
	if next {
		posts = posts[:limit]
	}
	s.counters.EnrichAll(ctx, posts, viewerID)
	if posts == nil {
		posts = []models.Post{}
	}
	return &models.PageResult{
		Page: page,
		Next: next,
		List: posts,
	}
}
