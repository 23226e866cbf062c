// Copyright (c) 2024 Wepo Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/wepoYJ/wepo-server/engagement/errors"
	"github.com/wepoYJ/wepo-server/engagement/keys"
	"github.com/wepoYJ/wepo-server/internal/cache"
	"github.com/wepoYJ/wepo-server/internal/pkg/log"
)

// EngagementService owns the write side of per-post engagement state: the
// idempotent like/dislike toggles and the cascade cleanup when a post goes
// away. It never touches the relational store.
type EngagementService interface {
	// ToggleLike likes (enable=true) or un-likes (enable=false) a post for a
	// user. Returns errors.ErrAlreadyInState when the requested state already
	// holds.
	ToggleLike(ctx context.Context, postID, userID int64, enable bool) error

	// ToggleDislike is the symmetric operation for dislikes.
	ToggleDislike(ctx context.Context, postID, userID int64, enable bool) error

	// NoteNewComment bumps the parent's comment counter after a comment row
	// was committed. Best-effort: a cache failure is logged and swallowed
	// because the relational insert is the operation of record.
	NoteNewComment(ctx context.Context, parentID int64)

	// CleanupPost removes all engagement keys of a deleted post and, when the
	// post was a comment, decrements the parent's comment counter. Every step
	// is best-effort; failures never surface as the deletion's own failure.
	CleanupPost(ctx context.Context, postID int64, parentID *int64)
}

type engagementService struct {
	cache cache.Cache
}

// NewEngagementService creates a new instance of the engagement service.
func NewEngagementService(c cache.Cache) EngagementService {
	return &engagementService{cache: c}
}

func (s *engagementService) ToggleLike(ctx context.Context, postID, userID int64, enable bool) error {
	return s.toggle(ctx, keys.PostLikers(postID), keys.PostLikeCount(postID), userID, enable)
}

func (s *engagementService) ToggleDislike(ctx context.Context, postID, userID int64, enable bool) error {
	return s.toggle(ctx, keys.PostDislikers(postID), keys.PostDislikeCount(postID), userID, enable)
}

// toggle is check-then-act: membership test first, then set and counter
// mutation as one batched submission. Two rapid duplicate requests from the
// same user can both pass the check before either mutates; that narrow
// double-count window is an accepted tradeoff for staying off store-side
// transactions.
func (s *engagementService) toggle(ctx context.Context, setKey, countKey string, userID int64, enable bool) error {
	member := strconv.FormatInt(userID, 10)

	isMember, err := s.cache.SetIsMember(ctx, setKey, member)
	if err != nil {
		// The membership check is the one step that must not be guessed at.
		return fmt.Errorf("%w: membership check: %v", errors.ErrCacheOperation, err)
	}
	if isMember == enable {
		return errors.ErrAlreadyInState
	}

	var cmds []cache.Command
	if enable {
		cmds = []cache.Command{
			cache.SetAddCmd(setKey, member),
			cache.IncrementCmd(countKey),
		}
	} else {
		cmds = []cache.Command{
			cache.SetRemoveCmd(setKey, member),
			cache.DecrementCmd(countKey),
		}
	}

	if err := s.cache.Apply(ctx, cmds); err != nil {
		return fmt.Errorf("%w: toggle submit: %v", errors.ErrCacheOperation, err)
	}
	return nil
}

func (s *engagementService) NoteNewComment(ctx context.Context, parentID int64) {
	if _, err := s.cache.Increment(ctx, keys.PostCommentCount(parentID)); err != nil {
		log.WarnWithContext(ctx, "comment counter bump failed for post %d: %v", parentID, err)
	}
}

func (s *engagementService) CleanupPost(ctx context.Context, postID int64, parentID *int64) {
	cmds := make([]cache.Command, 0, 5)
	for _, key := range keys.AllForPost(postID) {
		cmds = append(cmds, cache.DeleteCmd(key))
	}
	if err := s.cache.Apply(ctx, cmds); err != nil {
		log.WarnWithContext(ctx, "engagement cleanup failed for post %d: %v", postID, err)
	}

	// The parent's counter is issued on its own so a failed key sweep can
	// neither skip it nor apply it twice.
	if parentID != nil {
		if _, err := s.cache.Decrement(ctx, keys.PostCommentCount(*parentID)); err != nil {
			log.WarnWithContext(ctx, "comment counter decrement failed for post %d: %v", *parentID, err)
		}
	}
}
