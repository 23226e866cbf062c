// Copyright (c) 2024 Wepo Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package errors

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Engagement service specific errors
var (
	// ErrAlreadyInState means the toggle would be a no-op: liking an already
	// liked post, or un-liking a post the user never liked. It is a client
	// precondition failure, not a server error, and is never logged as one.
	ErrAlreadyInState = errors.New("engagement already in requested state")

	ErrInvalidRequest     = errors.New("invalid request")
	ErrInvalidPostID      = errors.New("invalid post id")
	ErrMissingUserContext = errors.New("missing user context")
	ErrCacheOperation     = errors.New("cache operation failed")
)

// Error codes
const (
	CodeAlreadyInState     = "ALREADY_IN_STATE"
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidPostID      = "INVALID_POST_ID"
	CodeMissingUserContext = "MISSING_USER_CONTEXT"
	CodeCacheError         = "CACHE_ERROR"
)

// ErrorResponse represents the standardized error response format
type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// HandleServiceError handles service errors and returns appropriate HTTP responses
func HandleServiceError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrAlreadyInState):
		return c.Status(http.StatusConflict).JSON(ErrorResponse{
			Code:    CodeAlreadyInState,
			Message: "Engagement already in requested state",
			Details: err.Error(),
		})
	case errors.Is(err, ErrInvalidPostID):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Code:    CodeInvalidPostID,
			Message: "Invalid post id",
			Details: err.Error(),
		})
	default:
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "An unexpected error occurred",
			Details: err.Error(),
		})
	}
}

// HandleValidationError handles validation errors with 400 Bad Request
func HandleValidationError(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Code:    CodeInvalidRequest,
		Message: message,
		Details: message,
	})
}

// HandleUserContextError handles user context errors with 400 Bad Request
func HandleUserContextError(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Code:    CodeMissingUserContext,
		Message: message,
		Details: message,
	})
}
