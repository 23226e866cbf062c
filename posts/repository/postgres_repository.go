// Copyright (c) 2024 Wepo Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/wepoYJ/wepo-server/internal/database/postgres"
	"github.com/wepoYJ/wepo-server/posts/models"
)

// postgresRepository implements PostRepository using raw SQL queries.
type postgresRepository struct {
	client *postgres.Client
}

// NewPostgresRepository creates a new PostgreSQL repository for posts.
func NewPostgresRepository(client *postgres.Client) PostRepository {
	return &postgresRepository{client: client}
}

func (r *postgresRepository) Create(ctx context.Context, post *models.Post) error {
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO posts (id, author_id, content, extends, created_at)
		VALUES ($1, $2, $3, NULL, $4)`

	if _, err := r.client.DB().ExecContext(ctx, query, post.ID, post.AuthorID, post.Content, post.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}
	return nil
}

func (r *postgresRepository) CreateComment(ctx context.Context, comment *models.Post) (int64, error) {
	if comment.ExtendsID == nil {
		return 0, fmt.Errorf("comment requires a parent post id")
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}

	// The parent's author comes back with the insert so the notification
	// path needs no second query.
	query := `
		WITH inserted AS (
			INSERT INTO posts (id, author_id, content, extends, created_at)
			SELECT $1, $2, $3, p.id, $4
			FROM posts p
			WHERE p.id = $5 AND p.extends IS NULL
			RETURNING extends
		)
		SELECT p.author_id
		FROM inserted i
		JOIN posts p ON p.id = i.extends`

	var parentAuthorID int64
	err := r.client.DB().QueryRowxContext(ctx, query,
		comment.ID, comment.AuthorID, comment.Content, comment.CreatedAt, *comment.ExtendsID,
	).Scan(&parentAuthorID)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, fmt.Errorf("parent post %d: %w", *comment.ExtendsID, ErrNotFound)
		}
		return 0, fmt.Errorf("failed to insert comment: %w", err)
	}
	return parentAuthorID, nil
}

func (r *postgresRepository) Delete(ctx context.Context, postID, authorID int64) (*int64, error) {
	query := `
		DELETE FROM posts
		WHERE id = $1 AND author_id = $2
		RETURNING extends`

	var extends sql.NullInt64
	err := r.client.DB().QueryRowxContext(ctx, query, postID, authorID).Scan(&extends)
	if err != nil {
		if err == sql.ErrNoRows {
			// Absent and not-owned are deliberately indistinguishable.
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete post: %w", err)
	}

	if !extends.Valid {
		return nil, nil
	}
	parentID := extends.Int64
	return &parentID, nil
}

func (r *postgresRepository) Get(ctx context.Context, postID int64) (*models.Post, error) {
	query := `
		SELECT id, author_id, content, extends, created_at
		FROM posts
		WHERE id = $1`

	var post models.Post
	if err := r.client.DB().GetContext(ctx, &post, query, postID); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return &post, nil
}

func (r *postgresRepository) ListComments(ctx context.Context, parentID, limit, offset int64) ([]models.Post, error) {
	query := `
		SELECT id, author_id, content, extends, created_at
		FROM posts
		WHERE extends = $1
		ORDER BY id ASC
		LIMIT $2 OFFSET $3`

	var comments []models.Post
	if err := r.client.DB().SelectContext(ctx, &comments, query, parentID, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

func (r *postgresRepository) List(ctx context.Context, limit, offset int64) ([]models.Post, error) {
	query := `
		SELECT id, author_id, content, extends, created_at
		FROM posts
		WHERE extends IS NULL
		ORDER BY id DESC
		LIMIT $1 OFFSET $2`

	var posts []models.Post
	if err := r.client.DB().SelectContext(ctx, &posts, query, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

func (r *postgresRepository) ListByAuthor(ctx context.Context, authorID, limit, offset int64) ([]models.Post, error) {
	query := `
		SELECT id, author_id, content, extends, created_at
		FROM posts
		WHERE author_id = $1 AND extends IS NULL
		ORDER BY id DESC
		LIMIT $2 OFFSET $3`

	var posts []models.Post
	if err := r.client.DB().SelectContext(ctx, &posts, query, authorID, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list posts by author: %w", err)
	}
	return posts, nil
}
