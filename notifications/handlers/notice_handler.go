// Copyright (c) 2024 Wepo Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/wepoYJ/wepo-server/internal/types"
	"github.com/wepoYJ/wepo-server/notifications/errors"
	"github.com/wepoYJ/wepo-server/notifications/services"
)

// NoticeHandler handles HTTP requests for notifications.
type NoticeHandler struct {
	noticeService services.NoticeService
}

// NewNoticeHandler creates a new notice handler.
func NewNoticeHandler(noticeService services.NoticeService) *NoticeHandler {
	return &NoticeHandler{noticeService: noticeService}
}

// ListComments handles GET /notices/comments
func (h *NoticeHandler) ListComments(c *fiber.Ctx) error {
	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleUserContextError(c, "Invalid user context")
	}

	page := int64(1)
	if parsed, err := strconv.ParseInt(c.Query("page"), 10, 64); err == nil && parsed > 0 {
		page = parsed
	}
	limit := int64(10)
	if parsed, err := strconv.ParseInt(c.Query("limit"), 10, 64); err == nil && parsed > 0 && parsed <= 100 {
		limit = parsed
	}

	result, err := h.noticeService.ListCommentNotices(c.Context(), user.UserID, page, limit)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.JSON(result)
}
