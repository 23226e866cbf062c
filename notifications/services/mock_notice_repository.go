// Copyright (c) 2024 Wepo Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/wepoYJ/wepo-server/notifications/models"
)

// MockNoticeRepository is a mock implementation of NoticeRepository for testing.
type MockNoticeRepository struct {
	mock.Mock
}

func (m *MockNoticeRepository) Insert(ctx context.Context, notice *models.Notice) error {
	args := m.Called(ctx, notice)
	return args.Error(0)
}

func (m *MockNoticeRepository) ListByAddressee(ctx context.Context, addresseeID int64, noticeType models.NoticeType, limit, offset int64) ([]models.Notice, error) {
	args := m.Called(ctx, addresseeID, noticeType, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notice), args.Error(1)
}

func (m *MockNoticeRepository) MarkRead(ctx context.Context, ids []int64) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}
