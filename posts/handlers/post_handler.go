// Copyright (c) 2024 Wepo Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/wepoYJ/wepo-server/internal/types"
	"github.com/wepoYJ/wepo-server/posts/errors"
	"github.com/wepoYJ/wepo-server/posts/models"
	"github.com/wepoYJ/wepo-server/posts/services"
	"github.com/wepoYJ/wepo-server/posts/validation"
)

const defaultPageSize = 10

// PostHandler handles all post-related HTTP requests.
type PostHandler struct {
	postService services.PostService
}

// NewPostHandler creates a new PostHandler with injected dependencies.
func NewPostHandler(postService services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// CreatePost handles POST /posts
func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	var req models.CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleInvalidRequestError(c, "Invalid request body")
	}

	if err := validation.ValidateCreatePostRequest(&req); err != nil {
		return errors.HandleValidationError(c, err.Error())
	}

	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleUserContextError(c, "Invalid user context")
	}

	id, err := h.postService.CreatePost(c.Context(), &req, &user)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(models.CreateResult{ID: id})
}

// Comment handles POST /posts/comment
func (h *PostHandler) Comment(c *fiber.Ctx) error {
	var req models.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleInvalidRequestError(c, "Invalid request body")
	}

	parentID, err := validation.ValidateCommentRequest(&req)
	if err != nil {
		return errors.HandleValidationError(c, err.Error())
	}

	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleUserContextError(c, "Invalid user context")
	}

	id, err := h.postService.Comment(c.Context(), &req, parentID, &user)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(models.CreateResult{ID: id})
}

// DeletePost handles DELETE /posts/:postId
func (h *PostHandler) DeletePost(c *fiber.Ctx) error {
	postID, err := strconv.ParseInt(c.Params("postId"), 10, 64)
	if err != nil || postID <= 0 {
		return errors.HandleValidationError(c, "Invalid post id")
	}

	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleUserContextError(c, "Invalid user context")
	}

	if err := h.postService.DeletePost(c.Context(), postID, &user); err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Post deleted successfully",
	})
}

// GetPost handles GET /posts/:postId
func (h *PostHandler) GetPost(c *fiber.Ctx) error {
	postID, err := strconv.ParseInt(c.Params("postId"), 10, 64)
	if err != nil || postID <= 0 {
		return errors.HandleValidationError(c, "Invalid post id")
	}

	post, err := h.postService.GetPost(c.Context(), postID, viewerID(c))
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.JSON(post)
}

// Browse handles GET /posts
func (h *PostHandler) Browse(c *fiber.Ctx) error {
	page, limit := paging(c)

	result, err := h.postService.Browse(c.Context(), page, limit, viewerID(c))
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.JSON(result)
}

// Mine handles GET /posts/mine
func (h *PostHandler) Mine(c *fiber.Ctx) error {
	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleUserContextError(c, "Invalid user context")
	}

	page, limit := paging(c)

	result, err := h.postService.Mine(c.Context(), page, limit, &user)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.JSON(result)
}

// viewerID extracts an optional viewer from the request context. Anonymous
// reads return nil, which suppresses membership lookups downstream.
func viewerID(c *fiber.Ctx) *int64 {
	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return nil
	}
	id := user.UserID
	return &id
}

func paging(c *fiber.Ctx) (page, limit int64) {
	page = 1
	if parsed, err := strconv.ParseInt(c.Query("page"), 10, 64); err == nil && parsed > 0 {
		page = parsed
	}
	limit = defaultPageSize
	if parsed, err := strconv.ParseInt(c.Query("limit"), 10, 64); err == nil && parsed > 0 && parsed <= 100 {
		limit = parsed
	}
	return page, limit
}
