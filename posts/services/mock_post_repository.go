// Copyright (c) 2024 Wepo Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/wepoYJ/wepo-server/posts/models"
	"github.com/wepoYJ/wepo-server/posts/repository"
)

// MockPostRepository is a mock implementation of PostRepository for testing
type MockPostRepository struct {
	mock.Mock
}

// Ensure MockPostRepository implements PostRepository
var _ repository.PostRepository = (*MockPostRepository)(nil)

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) CreateComment(ctx context.Context, comment *models.Post) (int64, error) {
	args := m.Called(ctx, comment)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPostRepository) Delete(ctx context.Context, postID, authorID int64) (*int64, error) {
	args := m.Called(ctx, postID, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*int64), args.Error(1)
}

func (m *MockPostRepository) Get(ctx context.Context, postID int64) (*models.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) ListComments(ctx context.Context, parentID, limit, offset int64) ([]models.Post, error) {
	args := m.Called(ctx, parentID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context, limit, offset int64) ([]models.Post, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) ListByAuthor(ctx context.Context, authorID, limit, offset int64) ([]models.Post, error) {
	args := m.Called(ctx, authorID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

// MockCommentNotifier is a mock implementation of CommentNotifier for testing
type MockCommentNotifier struct {
	mock.Mock
}

var _ CommentNotifier = (*MockCommentNotifier)(nil)

func (m *MockCommentNotifier) NotifyComment(ctx context.Context, senderID, addresseeID, commentID int64) error {
	args := m.Called(ctx, senderID, addresseeID, commentID)
	return args.Error(0)
}
