// Copyright (c) 2024 Wepo Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package notifications

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wepoYJ/wepo-server/internal/middleware/gatewayauth"
	"github.com/wepoYJ/wepo-server/notifications/handlers"
)

// NotificationsHandlers holds all the handlers this router needs.
type NotificationsHandlers struct {
	NoticeHandler *handlers.NoticeHandler
}

// RegisterRoutes is the single entry point for setting up notification routes.
func RegisterRoutes(app *fiber.App, h *NotificationsHandlers) {
	group := app.Group("/notices")

	required := gatewayauth.Required()

	group.Get("/comments", required, h.NoticeHandler.ListComments)
}
