// Copyright (c) 2024 Wepo Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"strconv"
	"sync"

	"github.com/wepoYJ/wepo-server/engagement/keys"
	"github.com/wepoYJ/wepo-server/internal/cache"
	"github.com/wepoYJ/wepo-server/internal/pkg/log"
	"github.com/wepoYJ/wepo-server/posts/models"
)

// CounterService is the read side: it fills the cached engagement counters
// and the viewer's membership flags into post records loaded from the
// relational store. It never writes to the relational store.
type CounterService interface {
	// Enrich populates the counters and viewer flags of one post. A cache
	// failure degrades the post to zeroed counters instead of failing the
	// caller; engagement counts are cosmetic, not authoritative content.
	Enrich(ctx context.Context, post *models.Post, viewerID *int64)

	// EnrichAll enriches a slice concurrently. The items touch disjoint keys,
	// so their lookups are independent; every item completes and per-item
	// failures stay per-item.
	EnrichAll(ctx context.Context, posts []models.Post, viewerID *int64)
}

type counterService struct {
	cache cache.Cache
}

// NewCounterService creates a new instance of the counter service.
func NewCounterService(c cache.Cache) CounterService {
	return &counterService{cache: c}
}

func (s *counterService) Enrich(ctx context.Context, post *models.Post, viewerID *int64) {
	post.LikeCount = 0
	post.DislikeCount = 0
	post.CommentCount = 0
	post.LikedByViewer = false
	post.DislikedByViewer = false

	counters, err := s.cache.GetCounters(ctx,
		keys.PostLikeCount(post.ID),
		keys.PostDislikeCount(post.ID),
		keys.PostCommentCount(post.ID),
	)
	if err != nil {
		log.WarnWithContext(ctx, "counter read failed for post %d: %v", post.ID, err)
		return
	}
	post.LikeCount = counters[0]
	post.DislikeCount = counters[1]
	post.CommentCount = counters[2]

	// Anonymous reads never issue membership queries.
	if viewerID == nil {
		return
	}
	member := strconv.FormatInt(*viewerID, 10)

	liked, err := s.cache.SetIsMember(ctx, keys.PostLikers(post.ID), member)
	if err != nil {
		log.WarnWithContext(ctx, "like membership read failed for post %d: %v", post.ID, err)
		return
	}
	post.LikedByViewer = liked

	disliked, err := s.cache.SetIsMember(ctx, keys.PostDislikers(post.ID), member)
	if err != nil {
		log.WarnWithContext(ctx, "dislike membership read failed for post %d: %v", post.ID, err)
		return
	}
	post.DislikedByViewer = disliked
}

func (s *counterService) EnrichAll(ctx context.Context, posts []models.Post, viewerID *int64) {
	var wg sync.WaitGroup
	for i := range posts {
		wg.Add(1)
		go func(p *models.Post) {
			defer wg.Done()
			s.Enrich(ctx, p, viewerID)
		}(&posts[i])
	}
	wg.Wait()
}
