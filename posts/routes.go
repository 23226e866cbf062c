// Copyright (c) 2024 Wepo Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package posts

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wepoYJ/wepo-server/internal/middleware/gatewayauth"
	"github.com/wepoYJ/wepo-server/posts/handlers"
)

// PostsHandlers holds all the handlers this router needs.
type PostsHandlers struct {
	PostHandler *handlers.PostHandler
}

// RegisterRoutes is the single entry point for setting up posts routes.
func RegisterRoutes(app *fiber.App, h *PostsHandlers) {
	group := app.Group("/posts")

	required := gatewayauth.Required()
	optional := gatewayauth.Optional()

	// Reads work anonymously; the viewer just gets false membership flags.
	group.Get("/", optional, h.PostHandler.Browse)
	group.Get("/mine", required, h.PostHandler.Mine)
	group.Get("/:postId", optional, h.PostHandler.GetPost)

	group.Post("/", required, h.PostHandler.CreatePost)
	group.Post("/comment", required, h.PostHandler.Comment)
	group.Delete("/:postId", required, h.PostHandler.DeletePost)
}
