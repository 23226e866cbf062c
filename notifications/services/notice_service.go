// Copyright (c) 2024 Wepo Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/wepoYJ/wepo-server/internal/pkg/log"
	apperrors "github.com/wepoYJ/wepo-server/notifications/errors"
	"github.com/wepoYJ/wepo-server/notifications/models"
	"github.com/wepoYJ/wepo-server/notifications/repository"
)

// NoticeService delivers and lists user notices.
type NoticeService interface {
	// NotifyComment records a comment notice for the post author. Commenting
	// on your own post produces no notice.
	NotifyComment(ctx context.Context, senderID, addresseeID, commentID int64) error
	// ListCommentNotices returns one page of comment notices for a user,
	// newest first, and marks the returned unread notices as read.
	ListCommentNotices(ctx context.Context, addresseeID, page, limit int64) (*models.NoticePageResult, error)
}

type noticeService struct {
	repo repository.NoticeRepository
}

// NewNoticeService creates a notification service backed by the given repository.
func NewNoticeService(repo repository.NoticeRepository) NoticeService {
	return &noticeService{repo: repo}
}

func (s *noticeService) NotifyComment(ctx context.Context, senderID, addresseeID, commentID int64) error {
	if senderID == addresseeID {
		return nil
	}

	notice := &models.Notice{
		SenderID:    senderID,
		NoticeType:  models.NoticeTypeComment,
		SenderObjID: strconv.FormatInt(commentID, 10),
		AddresseeID: addresseeID,
	}
	if err := s.repo.Insert(ctx, notice); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrNoticeStorage, err)
	}
	return nil
}

func (s *noticeService) ListCommentNotices(ctx context.Context, addresseeID, page, limit int64) (*models.NoticePageResult, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	// Fetch one extra row to detect whether another page exists.
	notices, err := s.repo.ListByAddressee(ctx, addresseeID, models.NoticeTypeComment, limit+1, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrNoticeStorage, err)
	}

	next := int64(len(notices)) > limit
	if next {
		notices = notices[:limit]
	}

	var unread []int64
	for _, n := range notices {
		if !n.Read {
			unread = append(unread, n.ID)
		}
	}
	if len(unread) > 0 {
		// Delivery is what matters; a failed read-flag update just means the
		// notices show up unread again next time.
		if err := s.repo.MarkRead(ctx, unread); err != nil {
			log.WarnWithContext(ctx, "Failed to mark notices read for user %d: %v", addresseeID, err)
		}
	}

	return &models.NoticePageResult{
		Page: page,
		Next: next,
		List: notices,
	}, nil
}
