// Copyright (c) 2024 Wepo Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"

	"github.com/wepoYJ/wepo-server/notifications/models"
)

// NoticeRepository defines the relational operations for notices.
type NoticeRepository interface {
	// Insert stores one notice row.
	Insert(ctx context.Context, notice *models.Notice) error

	// ListByAddressee loads a page of one user's notices of a given type,
	// newest first.
	ListByAddressee(ctx context.Context, addresseeID int64, noticeType models.NoticeType, limit, offset int64) ([]models.Notice, error)

	// MarkRead flips the read flag of the given notices.
	MarkRead(ctx context.Context, ids []int64) error
}
