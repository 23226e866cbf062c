// Copyright (c) 2024 Wepo Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/wepoYJ/wepo-server/engagement/errors"
	"github.com/wepoYJ/wepo-server/engagement/services"
	"github.com/wepoYJ/wepo-server/internal/types"
)

// EngagementHandler handles like/dislike HTTP requests.
type EngagementHandler struct {
	engagementService services.EngagementService
}

// NewEngagementHandler creates a new EngagementHandler with injected dependencies.
func NewEngagementHandler(engagementService services.EngagementService) *EngagementHandler {
	return &EngagementHandler{engagementService: engagementService}
}

// Like handles POST /posts/:postId/like
func (h *EngagementHandler) Like(c *fiber.Ctx) error {
	return h.toggle(c, h.engagementService.ToggleLike, true)
}

// Unlike handles DELETE /posts/:postId/like
func (h *EngagementHandler) Unlike(c *fiber.Ctx) error {
	return h.toggle(c, h.engagementService.ToggleLike, false)
}

// Dislike handles POST /posts/:postId/dislike
func (h *EngagementHandler) Dislike(c *fiber.Ctx) error {
	return h.toggle(c, h.engagementService.ToggleDislike, true)
}

// Undislike handles DELETE /posts/:postId/dislike
func (h *EngagementHandler) Undislike(c *fiber.Ctx) error {
	return h.toggle(c, h.engagementService.ToggleDislike, false)
}

func (h *EngagementHandler) toggle(c *fiber.Ctx, fn func(ctx context.Context, postID, userID int64, enable bool) error, enable bool) error {
	postID, err := strconv.ParseInt(c.Params("postId"), 10, 64)
	if err != nil || postID <= 0 {
		return errors.HandleValidationError(c, "Invalid post id")
	}

	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleUserContextError(c, "Invalid user context")
	}

	if err := fn(c.Context(), postID, user.UserID, enable); err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Engagement recorded successfully",
	})
}
