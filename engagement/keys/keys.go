// Copyright (c) 2024 Wepo Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package keys

import "fmt"

// Cache key derivation for per-post engagement state. Every key is scoped to
// exactly one post; no key ever mixes two posts.

// PostLikers is the set of user ids that liked a post.
func PostLikers(postID int64) string {
	return fmt.Sprintf("post:%d:likers", postID)
}

// PostLikeCount is the cached cardinality of PostLikers.
func PostLikeCount(postID int64) string {
	return fmt.Sprintf("post:%d:like_count", postID)
}

// PostDislikers is the set of user ids that disliked a post.
func PostDislikers(postID int64) string {
	return fmt.Sprintf("post:%d:dislikers", postID)
}

// PostDislikeCount is the cached cardinality of PostDislikers.
func PostDislikeCount(postID int64) string {
	return fmt.Sprintf("post:%d:dislike_count", postID)
}

// PostCommentCount is the number of comments under a post.
func PostCommentCount(postID int64) string {
	return fmt.Sprintf("post:%d:comment_count", postID)
}

// AllForPost lists every engagement key of a post, for cascade cleanup.
func AllForPost(postID int64) []string {
	return []string{
		PostLikers(postID),
		PostLikeCount(postID),
		PostDislikers(postID),
		PostDislikeCount(postID),
		PostCommentCount(postID),
	}
}
