// Copyright (c) 2024 Wepo Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package engagement

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wepoYJ/wepo-server/engagement/handlers"
	"github.com/wepoYJ/wepo-server/internal/middleware/gatewayauth"
)

// EngagementHandlers holds all the handlers this router needs.
type EngagementHandlers struct {
	EngagementHandler *handlers.EngagementHandler
}

// RegisterRoutes is the single entry point for setting up engagement routes.
func RegisterRoutes(app *fiber.App, h *EngagementHandlers) {
	group := app.Group("/posts")

	// All engagement writes require a resolved viewer. The middleware is
	// attached per route so the public post reads sharing this prefix stay
	// anonymous-friendly.
	auth := gatewayauth.Required()

	group.Post("/:postId/like", auth, h.EngagementHandler.Like)
	group.Delete("/:postId/like", auth, h.EngagementHandler.Unlike)
	group.Post("/:postId/dislike", auth, h.EngagementHandler.Dislike)
	group.Delete("/:postId/dislike", auth, h.EngagementHandler.Undislike)
}
