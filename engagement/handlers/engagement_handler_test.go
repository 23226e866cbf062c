// Copyright (c) 2024 Wepo Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wepoYJ/wepo-server/engagement"
	"github.com/wepoYJ/wepo-server/engagement/handlers"
	"github.com/wepoYJ/wepo-server/engagement/keys"
	"github.com/wepoYJ/wepo-server/engagement/services"
	"github.com/wepoYJ/wepo-server/internal/cache"
	"github.com/wepoYJ/wepo-server/internal/testutil"
)

func newTestApp(t *testing.T) (*testutil.HTTPHelper, *cache.MemoryCache) {
	t.Helper()

	mem := cache.NewMemoryCache()
	app := fiber.New()
	engagement.RegisterRoutes(app, &engagement.EngagementHandlers{
		EngagementHandler: handlers.NewEngagementHandler(services.NewEngagementService(mem)),
	})
	return testutil.NewHTTPHelper(t, app), mem
}

func TestLikeEndpoint(t *testing.T) {
	helper, mem := newTestApp(t)

	helper.Post("/posts/100/like").WithUser(7, "alice").Send().
		RequireStatus(http.StatusOK)

	count, err := mem.GetCounter(context.Background(), keys.PostLikeCount(100))
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestLikeEndpoint_Duplicate_Conflict(t *testing.T) {
	helper, mem := newTestApp(t)

	helper.Post("/posts/100/like").WithUser(7, "alice").Send().
		RequireStatus(http.StatusOK)
	helper.Post("/posts/100/like").WithUser(7, "alice").Send().
		RequireStatus(http.StatusConflict)

	// The rejected repeat must not bump the counter.
	count, err := mem.GetCounter(context.Background(), keys.PostLikeCount(100))
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUnlikeEndpoint_RoundTrip(t *testing.T) {
	helper, mem := newTestApp(t)

	helper.Post("/posts/100/like").WithUser(7, "alice").Send().
		RequireStatus(http.StatusOK)
	helper.Delete("/posts/100/like").WithUser(7, "alice").Send().
		RequireStatus(http.StatusOK)

	count, err := mem.GetCounter(context.Background(), keys.PostLikeCount(100))
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
	assert.Equal(t, int64(0), mem.SetCard(keys.PostLikers(100)))
}

func TestUnlikeEndpoint_NeverLiked_Conflict(t *testing.T) {
	helper, _ := newTestApp(t)

	helper.Delete("/posts/100/like").WithUser(7, "alice").Send().
		RequireStatus(http.StatusConflict)
}

func TestDislikeEndpoint(t *testing.T) {
	helper, mem := newTestApp(t)

	helper.Post("/posts/100/dislike").WithUser(7, "alice").Send().
		RequireStatus(http.StatusOK)

	count, err := mem.GetCounter(context.Background(), keys.PostDislikeCount(100))
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, int64(0), mem.SetCard(keys.PostLikers(100)))
}

func TestEngagement_RequiresIdentity(t *testing.T) {
	helper, _ := newTestApp(t)

	helper.Post("/posts/100/like").Send().
		RequireStatus(http.StatusUnauthorized)
	helper.Post("/posts/100/like").WithHeader("X-User-Id", "not-a-number").Send().
		RequireStatus(http.StatusUnauthorized)
}

func TestEngagement_InvalidPostID(t *testing.T) {
	helper, _ := newTestApp(t)

	helper.Post("/posts/abc/like").WithUser(7, "alice").Send().
		RequireStatus(http.StatusBadRequest)
	helper.Post("/posts/0/like").WithUser(7, "alice").Send().
		RequireStatus(http.StatusBadRequest)
}
