// Copyright (c) 2024 Wepo Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package models

import "time"

// Post is the read model for a post or comment row. Ids are snowflake int64s
// rendered as strings in JSON so browser clients do not lose precision.
//
// The engagement counters and viewer flags are never stored in the relational
// row; the counter synchronizer fills them from the cache per request.
type Post struct {
	ID        int64     `db:"id" json:"id,string"`
	AuthorID  int64     `db:"author_id" json:"authorId"`
	Content   string    `db:"content" json:"content"`
	ExtendsID *int64    `db:"extends" json:"extendsId,omitempty"` // non-nil means this row is a comment
	CreatedAt time.Time `db:"created_at" json:"createdAt"`

	LikeCount        int64 `db:"-" json:"likeCount"`
	DislikeCount     int64 `db:"-" json:"dislikeCount"`
	CommentCount     int64 `db:"-" json:"commentCount"`
	LikedByViewer    bool  `db:"-" json:"likedByViewer"`
	DislikedByViewer bool  `db:"-" json:"dislikedByViewer"`
}

// IsComment reports whether the post extends a parent post.
func (p *Post) IsComment() bool {
	return p.ExtendsID != nil
}

// MaxCommentsPerFetch bounds the comment page loaded with a post.
const MaxCommentsPerFetch = 20

// PostWithComments is a post plus the first page of its comments.
type PostWithComments struct {
	Post
	Comments []Post `json:"comments"`
}

// CreatePostRequest is the body for creating a top-level post.
type CreatePostRequest struct {
	Content string `json:"content"`
}

// CommentRequest is the body for commenting on a post.
type CommentRequest struct {
	Content  string `json:"content"`
	OriginID string `json:"originId"` // parent post id, as string
}

// CreateResult carries the id allocated for a new post or comment.
type CreateResult struct {
	ID int64 `json:"id,string"`
}

// PageResult wraps a page of posts with a has-more flag.
type PageResult struct {
	Page int64  `json:"page"`
	Next bool   `json:"next"`
	List []Post `json:"list"`
}
