// Copyright (c) 2024 Wepo Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"
	"errors"

	"github.com/wepoYJ/wepo-server/posts/models"
)

// ErrNotFound is returned when a post does not exist or does not belong to
// the acting user. Both cases look identical to callers so ownership is not
// probeable.
var ErrNotFound = errors.New("post not found")

// PostRepository defines the relational operations for posts and comments.
// The relational store owns identity, authorship, and content; it never
// stores engagement counters.
type PostRepository interface {
	// Create inserts a top-level post row with a caller-allocated id.
	Create(ctx context.Context, post *models.Post) error

	// CreateComment inserts a comment row and returns the parent's author id
	// so the caller can address a notification.
	CreateComment(ctx context.Context, comment *models.Post) (parentAuthorID int64, err error)

	// Delete removes a post owned by authorID. It returns the parent id when
	// the deleted row was a comment, nil otherwise, and ErrNotFound when no
	// owned row matched.
	Delete(ctx context.Context, postID, authorID int64) (*int64, error)

	// Get loads one post by id, ErrNotFound when absent.
	Get(ctx context.Context, postID int64) (*models.Post, error)

	// ListComments loads a page of comments under a parent, oldest first.
	ListComments(ctx context.Context, parentID, limit, offset int64) ([]models.Post, error)

	// List loads a page of top-level posts, newest first.
	List(ctx context.Context, limit, offset int64) ([]models.Post, error)

	// ListByAuthor loads a page of an author's top-level posts, newest first.
	ListByAuthor(ctx context.Context, authorID, limit, offset int64) ([]models.Post, error)
}
