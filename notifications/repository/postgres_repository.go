// Copyright (c) 2024 Wepo Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/wepoYJ/wepo-server/internal/database/postgres"
	"github.com/wepoYJ/wepo-server/notifications/models"
)

// postgresRepository implements NoticeRepository using raw SQL queries.
type postgresRepository struct {
	client *postgres.Client
}

// NewPostgresRepository creates a new PostgreSQL repository for notices.
func NewPostgresRepository(client *postgres.Client) NoticeRepository {
	return &postgresRepository{client: client}
}

func (r *postgresRepository) Insert(ctx context.Context, notice *models.Notice) error {
	if notice.CreatedAt.IsZero() {
		notice.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO notices (sender_id, notice_type, sender_obj_id, addressee_id, read, created_at)
		VALUES ($1, $2, $3, $4, FALSE, $5)
		RETURNING id`

	err := r.client.DB().QueryRowxContext(ctx, query,
		notice.SenderID, notice.NoticeType, notice.SenderObjID, notice.AddresseeID, notice.CreatedAt,
	).Scan(&notice.ID)
	if err != nil {
		return fmt.Errorf("failed to insert notice: %w", err)
	}
	return nil
}

func (r *postgresRepository) ListByAddressee(ctx context.Context, addresseeID int64, noticeType models.NoticeType, limit, offset int64) ([]models.Notice, error) {
	query := `
		SELECT id, sender_id, notice_type, sender_obj_id, addressee_id, read, created_at
		FROM notices
		WHERE addressee_id = $1 AND notice_type = $2
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4`

	var notices []models.Notice
	if err := r.client.DB().SelectContext(ctx, &notices, query, addresseeID, noticeType, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list notices: %w", err)
	}
	return notices, nil
}

func (r *postgresRepository) MarkRead(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := sqlx.In(`UPDATE notices SET read = TRUE WHERE id IN (?)`, ids)
	if err != nil {
		return fmt.Errorf("failed to build mark-read query: %w", err)
	}
	query = r.client.DB().Rebind(query)

	if _, err := r.client.DB().ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to mark notices read: %w", err)
	}
	return nil
}
